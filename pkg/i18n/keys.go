package i18n

// Key identifies a message.
type Key int

const (
	KeyWelcome Key = iota
	KeyNameInvalid
	KeyCodeSent
	KeyCodeInvalid
	KeyCodeExpired
	KeyCodeTooMany
	KeyDeliveryFailed
	KeySetPin
	KeyPinInvalidFormat
	KeyEnterPin
	KeyPinWrong
	KeyPinTooMany
	KeyAccountLocked
	KeyMainMenu
	KeyLocalMenu
	KeyCryptoMenu
	KeySettingsMenu
	KeyInvalidChoice
	KeyBalance
	KeyEnterRecipient
	KeyInvalidPhone
	KeyRecipientUnknown
	KeyEnterAmount
	KeyInvalidAmount
	KeyConfirmSend
	KeySendSuccess
	KeyInsufficientFunds
	KeyDepositInfo
	KeyEnterAgentID
	KeyAgentUnknown
	KeyConfirmWithdraw
	KeyWithdrawSuccess
	KeyAgentList
	KeyNoAgents
	KeyHistory
	KeyNoHistory
	KeyDepositAddress
	KeyEnterBuyAmount
	KeyEnterSellAmount
	KeyConfirmBuy
	KeyConfirmSell
	KeyEscrowCreated
	KeyEnterAddress
	KeyInvalidAddress
	KeyEnterSendAmount
	KeyConfirmCryptoSend
	KeyCryptoSendSuccess
	KeyCancelled
	KeyLanguageMenu
	KeyLanguageSet
	KeyCurrencyMenu
	KeyCurrencySet
	KeyEnterCurrentPin
	KeyEnterNewPin
	KeyConfirmNewPin
	KeyPinConfirmMismatch
	KeyPinChanged
	KeyServiceError
	KeyGoodbye
	KeySMSVerification
	KeySMSSendReceipt
	KeySMSReceived
	KeySMSEscrowCreated
	KeySMSEscrowCompleted

	keyCount
)

var keyNames = [keyCount]string{
	KeyWelcome:            "welcome",
	KeyNameInvalid:        "name_invalid",
	KeyCodeSent:           "code_sent",
	KeyCodeInvalid:        "code_invalid",
	KeyCodeExpired:        "code_expired",
	KeyCodeTooMany:        "code_too_many",
	KeyDeliveryFailed:     "delivery_failed",
	KeySetPin:             "set_pin",
	KeyPinInvalidFormat:   "pin_invalid_format",
	KeyEnterPin:           "enter_pin",
	KeyPinWrong:           "pin_wrong",
	KeyPinTooMany:         "pin_too_many",
	KeyAccountLocked:      "account_locked",
	KeyMainMenu:           "main_menu",
	KeyLocalMenu:          "local_menu",
	KeyCryptoMenu:         "crypto_menu",
	KeySettingsMenu:       "settings_menu",
	KeyInvalidChoice:      "invalid_choice",
	KeyBalance:            "balance",
	KeyEnterRecipient:     "enter_recipient",
	KeyInvalidPhone:       "invalid_phone",
	KeyRecipientUnknown:   "recipient_unknown",
	KeyEnterAmount:        "enter_amount",
	KeyInvalidAmount:      "invalid_amount",
	KeyConfirmSend:        "confirm_send",
	KeySendSuccess:        "send_success",
	KeyInsufficientFunds:  "insufficient_funds",
	KeyDepositInfo:        "deposit_info",
	KeyEnterAgentID:       "enter_agent_id",
	KeyAgentUnknown:       "agent_unknown",
	KeyConfirmWithdraw:    "confirm_withdraw",
	KeyWithdrawSuccess:    "withdraw_success",
	KeyAgentList:          "agent_list",
	KeyNoAgents:           "no_agents",
	KeyHistory:            "history",
	KeyNoHistory:          "no_history",
	KeyDepositAddress:     "deposit_address",
	KeyEnterBuyAmount:     "enter_buy_amount",
	KeyEnterSellAmount:    "enter_sell_amount",
	KeyConfirmBuy:         "confirm_buy",
	KeyConfirmSell:        "confirm_sell",
	KeyEscrowCreated:      "escrow_created",
	KeyEnterAddress:       "enter_address",
	KeyInvalidAddress:     "invalid_address",
	KeyEnterSendAmount:    "enter_send_amount",
	KeyConfirmCryptoSend:  "confirm_crypto_send",
	KeyCryptoSendSuccess:  "crypto_send_success",
	KeyCancelled:          "cancelled",
	KeyLanguageMenu:       "language_menu",
	KeyLanguageSet:        "language_set",
	KeyCurrencyMenu:       "currency_menu",
	KeyCurrencySet:        "currency_set",
	KeyEnterCurrentPin:    "enter_current_pin",
	KeyEnterNewPin:        "enter_new_pin",
	KeyConfirmNewPin:      "confirm_new_pin",
	KeyPinConfirmMismatch: "pin_confirm_mismatch",
	KeyPinChanged:         "pin_changed",
	KeyServiceError:       "service_error",
	KeyGoodbye:            "goodbye",
	KeySMSVerification:    "sms_verification",
	KeySMSSendReceipt:     "sms_send_receipt",
	KeySMSReceived:        "sms_received",
	KeySMSEscrowCreated:   "sms_escrow_created",
	KeySMSEscrowCompleted: "sms_escrow_completed",
}

func (k Key) String() string {
	if k >= 0 && k < keyCount && keyNames[k] != "" {
		return keyNames[k]
	}
	return "unknown"
}
