package sms

// Gateway sends one-time passwords to employees' mobile phones
type Gateway interface {
	// SendOTP sends an OTP code and returns the provider's message reference
	SendOTP(phone, otpCode string) (string, error)

	// Name returns the name of the gateway implementation
	Name() string
}
