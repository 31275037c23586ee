package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodAlipay     Method = "alipay"
	MethodWechat     Method = "wechat"
	MethodCreditCard Method = "creditCard"
)

func (m Method) Valid() bool {
	switch m {
	case MethodAlipay, MethodWechat, MethodCreditCard:
		return true
	}
	return false
}

// ChargeRequest describes one order payment.
type ChargeRequest struct {
	OrderID string
	OrderNo string
	Amount  decimal.Decimal
	Method  Method
}

type Receipt struct {
	Reference string
	Method    Method
	Amount    decimal.Decimal
	PaidAt    time.Time
}
