package i18n

var english = [keyCount]string{
	KeyWelcome:            "Welcome! Enter your full name (first and last):",
	KeyNameInvalid:        "Please enter your first and last name:",
	KeyCodeSent:           "We sent a 6-digit code to %s. Enter the code:",
	KeyCodeInvalid:        "Wrong code. %d attempts left. Enter the code:",
	KeyCodeExpired:        "Your code has expired. Dial again to restart registration.",
	KeyCodeTooMany:        "Too many wrong codes. Dial again to restart registration.",
	KeyDeliveryFailed:     "We could not send your code. Please try again later.",
	KeySetPin:             "Create a 4-digit PIN:",
	KeyPinInvalidFormat:   "PIN must be exactly 4 digits. Enter PIN:",
	KeyEnterPin:           "Enter your PIN:",
	KeyPinWrong:           "Wrong PIN. %d attempts left. Enter PIN:",
	KeyPinTooMany:         "Too many wrong PIN attempts. Session ended.",
	KeyAccountLocked:      "Your account is locked until %s.",
	KeyMainMenu:           "Main menu\n1. Local currency\n2. Bitcoin\n3. USDC\n4. Settings",
	KeyLocalMenu:          "Local currency\n1. Send money\n2. Check balance\n3. Deposit\n4. Withdraw\n5. Find agent\n6. Transactions\n0. Back",
	KeyCryptoMenu:         "%s\n1. Check balance\n2. Deposit address\n3. Buy\n4. Sell\n5. Send\n0. Back",
	KeySettingsMenu:       "Settings\n1. Language\n2. Change PIN\n3. Currency\n0. Back",
	KeyInvalidChoice:      "Invalid choice.",
	KeyBalance:            "%s balance: %s\n0. Back",
	KeyEnterRecipient:     "Enter recipient phone number:",
	KeyInvalidPhone:       "Invalid phone number. Enter recipient phone number:",
	KeyRecipientUnknown:   "%s is not registered. Enter recipient phone number:",
	KeyEnterAmount:        "Enter amount in %s:",
	KeyInvalidAmount:      "Invalid amount. Enter amount in %s:",
	KeyConfirmSend:        "Send %s to %s?\n1. Confirm\n2. Cancel",
	KeySendSuccess:        "Sent %s to %s. Ref: %s",
	KeyInsufficientFunds:  "Insufficient balance.",
	KeyDepositInfo:        "To deposit %s, visit any agent and give them your number %s.\n0. Back",
	KeyEnterAgentID:       "Enter agent ID:",
	KeyAgentUnknown:       "Agent not found. Enter agent ID:",
	KeyConfirmWithdraw:    "Withdraw %s through %s?\n1. Confirm\n2. Cancel",
	KeyWithdrawSuccess:    "Withdrawal of %s sent to %s. Collect your cash. Ref: %s",
	KeyAgentList:          "Agents:\n%s\n0. Back",
	KeyNoAgents:           "No agents available.\n0. Back",
	KeyHistory:            "Recent transactions:\n%s\n0. Back",
	KeyNoHistory:          "No transactions yet.\n0. Back",
	KeyDepositAddress:     "Your %s deposit address:\n%s\n0. Back",
	KeyEnterBuyAmount:     "Enter amount in %s to spend on %s:",
	KeyEnterSellAmount:    "Enter %s amount to sell:",
	KeyConfirmBuy:         "Buy %s for %s?\n1. Confirm\n2. Cancel",
	KeyConfirmSell:        "Sell %s for %s?\n1. Confirm\n2. Cancel",
	KeyEscrowCreated:      "Exchange code: %s\nShow this code to the agent. Valid until %s.",
	KeyEnterAddress:       "Enter %s destination address:",
	KeyInvalidAddress:     "Invalid address. Enter %s destination address:",
	KeyEnterSendAmount:    "Enter %s amount to send:",
	KeyConfirmCryptoSend:  "Send %s to %s?\n1. Confirm\n2. Cancel",
	KeyCryptoSendSuccess:  "Sent %s. Ref: %s",
	KeyCancelled:          "Cancelled.",
	KeyLanguageMenu:       "Choose language\n1. English\n2. Luganda\n3. Kiswahili\n0. Back",
	KeyLanguageSet:        "Language updated.",
	KeyCurrencyMenu:       "Choose currency\n1. UGX\n2. KES\n3. TZS\n4. RWF\n5. NGN\n6. GHS\n0. Back",
	KeyCurrencySet:        "Currency set to %s.",
	KeyEnterCurrentPin:    "Enter current PIN:",
	KeyEnterNewPin:        "Enter new 4-digit PIN:",
	KeyConfirmNewPin:      "Confirm new PIN:",
	KeyPinConfirmMismatch: "PINs do not match. Enter new 4-digit PIN:",
	KeyPinChanged:         "PIN changed successfully.",
	KeyServiceError:       "Service unavailable. Please try again later.",
	KeyGoodbye:            "Thank you. Goodbye.",
	KeySMSVerification:    "Your verification code is %s. It expires in 10 minutes.",
	KeySMSSendReceipt:     "You sent %s to %s. Ref: %s",
	KeySMSReceived:        "You received %s from %s. Ref: %s",
	KeySMSEscrowCreated:   "Exchange code %s for %s. Valid until %s.",
	KeySMSEscrowCompleted: "Exchange %s completed.",
}
