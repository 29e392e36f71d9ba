package sms

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogGateway is used in development: nothing is sent, the OTP is logged
type LogGateway struct{}

// NewLogGateway creates a development gateway
func NewLogGateway() *LogGateway {
	return &LogGateway{}
}

// Name returns the gateway name
func (g *LogGateway) Name() string {
	return "log"
}

// SendOTP logs the OTP instead of sending it
func (g *LogGateway) SendOTP(phone, otpCode string) (string, error) {
	ref := uuid.NewString()
	logrus.WithFields(logrus.Fields{
		"phone": phone,
		"otp":   otpCode,
		"ref":   ref,
	}).Warn("SMS gateway in dev mode, OTP not sent")
	return ref, nil
}
