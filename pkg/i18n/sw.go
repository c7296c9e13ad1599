package i18n

var swahili = [keyCount]string{
	KeyWelcome:            "Karibu! Weka jina lako kamili (la kwanza na la mwisho):",
	KeyNameInvalid:        "Tafadhali weka jina la kwanza na la mwisho:",
	KeyCodeSent:           "Tumetuma nambari ya tarakimu 6 kwa %s. Weka nambari:",
	KeyCodeInvalid:        "Nambari si sahihi. Majaribio %d yamebaki. Weka nambari:",
	KeyCodeExpired:        "Nambari yako imeisha muda. Piga tena kuanza usajili.",
	KeyCodeTooMany:        "Majaribio mengi yasiyo sahihi. Piga tena kuanza usajili.",
	KeyDeliveryFailed:     "Hatukuweza kutuma nambari yako. Jaribu tena baadaye.",
	KeySetPin:             "Unda PIN ya tarakimu 4:",
	KeyPinInvalidFormat:   "PIN lazima iwe tarakimu 4. Weka PIN:",
	KeyEnterPin:           "Weka PIN yako:",
	KeyPinWrong:           "PIN si sahihi. Majaribio %d yamebaki. Weka PIN:",
	KeyPinTooMany:         "Majaribio mengi ya PIN. Kipindi kimekwisha.",
	KeyAccountLocked:      "Akaunti yako imefungwa hadi %s.",
	KeyMainMenu:           "Menyu kuu\n1. Sarafu ya ndani\n2. Bitcoin\n3. USDC\n4. Mipangilio",
	KeyLocalMenu:          "Sarafu ya ndani\n1. Tuma pesa\n2. Angalia salio\n3. Weka pesa\n4. Toa pesa\n5. Tafuta wakala\n6. Miamala\n0. Rudi",
	KeyCryptoMenu:         "%s\n1. Angalia salio\n2. Anwani ya kuweka\n3. Nunua\n4. Uza\n5. Tuma\n0. Rudi",
	KeySettingsMenu:       "Mipangilio\n1. Lugha\n2. Badilisha PIN\n3. Sarafu\n0. Rudi",
	KeyInvalidChoice:      "Chaguo si sahihi.",
	KeyBalance:            "Salio la %s: %s\n0. Rudi",
	KeyEnterRecipient:     "Weka nambari ya simu ya mpokeaji:",
	KeyInvalidPhone:       "Nambari ya simu si sahihi. Weka nambari ya mpokeaji:",
	KeyRecipientUnknown:   "%s hajasajiliwa. Weka nambari ya mpokeaji:",
	KeyEnterAmount:        "Weka kiasi kwa %s:",
	KeyInvalidAmount:      "Kiasi si sahihi. Weka kiasi kwa %s:",
	KeyConfirmSend:        "Tuma %s kwa %s?\n1. Thibitisha\n2. Ghairi",
	KeySendSuccess:        "Umetuma %s kwa %s. Kumb: %s",
	KeyInsufficientFunds:  "Salio halitoshi.",
	KeyEnterAgentID:       "Weka nambari ya wakala:",
	KeyAgentUnknown:       "Wakala hakupatikana. Weka nambari ya wakala:",
	KeyNoAgents:           "Hakuna mawakala.\n0. Rudi",
	KeyNoHistory:          "Hakuna miamala bado.\n0. Rudi",
	KeyEnterSellAmount:    "Weka kiasi cha %s cha kuuza:",
	KeyCancelled:          "Imeghairiwa.",
	KeyLanguageSet:        "Lugha imebadilishwa.",
	KeyEnterCurrentPin:    "Weka PIN ya sasa:",
	KeyEnterNewPin:        "Weka PIN mpya ya tarakimu 4:",
	KeyConfirmNewPin:      "Thibitisha PIN mpya:",
	KeyPinConfirmMismatch: "PIN hazilingani. Weka PIN mpya ya tarakimu 4:",
	KeyPinChanged:         "PIN imebadilishwa.",
	KeyServiceError:       "Huduma haipatikani. Jaribu tena baadaye.",
	KeyGoodbye:            "Asante. Kwaheri.",
	KeySMSVerification:    "Nambari yako ya uthibitisho ni %s. Itaisha baada ya dakika 10.",
}
