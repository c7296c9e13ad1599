package i18n

var luganda = [keyCount]string{
	KeyWelcome:           "Tukusanyukidde! Yingiza amannya go gombi (erisooka n'ery'enkomerero):",
	KeyNameInvalid:       "Yingiza erinnya erisooka n'ery'enkomerero:",
	KeySetPin:            "Kola PIN ey'ennamba 4:",
	KeyEnterPin:          "Yingiza PIN yo:",
	KeyPinTooMany:        "Ogezezzaako PIN emirundi mingi. Kikomye.",
	KeyMainMenu:          "Menyu enkulu\n1. Ssente za wano\n2. Bitcoin\n3. USDC\n4. Enteekateeka",
	KeyInvalidChoice:     "Tolonze bulungi.",
	KeyEnterRecipient:    "Yingiza ennamba y'essimu y'oyo gw'oweereza:",
	KeyInsufficientFunds: "Ssente tezimala.",
	KeyCancelled:         "Kisaziddwamu.",
	KeyServiceError:      "Empeereza teriiwo kaakano. Gezaako oluvannyuma.",
	KeyGoodbye:           "Webale. Weeraba.",
}
