package providers

// DetectCardType infers the card network label the gateway expects from the
// leading digit of the card number. This is a presentational hint only: no
// length or Luhn check happens here, and callers must not treat the result
// as validation.
func DetectCardType(cardNumber string) string {
	if cardNumber == "" {
		return "visa"
	}
	switch cardNumber[0] {
	case '1': // gateway test cards
		return "visa"
	case '3':
		return "amex"
	case '4':
		return "visa"
	case '5':
		return "mastercard"
	case '6':
		return "discover"
	default:
		return "visa"
	}
}
