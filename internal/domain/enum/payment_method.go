package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod represents how an invoice was paid
type PaymentMethod int

const (
	// PaymentMethodUnknown covers invoices recorded without a recognised method.
	PaymentMethodUnknown PaymentMethod = 0
	PaymentMethodCash    PaymentMethod = 1
	PaymentMethodCard    PaymentMethod = 2
)

func (p PaymentMethod) String() string {
	names := [...]string{"unknown", "cash", "card"}
	if int(p) < 0 || int(p) >= len(names) {
		return "unknown"
	}
	return names[p]
}

// Label is the Spanish name printed on receipts.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentMethodCash:
		return "Efectivo"
	case PaymentMethodCard:
		return "Tarjeta"
	default:
		return "No especificado"
	}
}

// IsKnown reports whether p is cash or card.
func (p PaymentMethod) IsKnown() bool {
	return p == PaymentMethodCash || p == PaymentMethodCard
}

// ParsePaymentMethod accepts the English or Spanish name of a method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash", "efectivo":
		return PaymentMethodCash, nil
	case "card", "tarjeta":
		return PaymentMethodCard, nil
	case "", "unknown":
		return PaymentMethodUnknown, nil
	}
	return PaymentMethodUnknown, fmt.Errorf("unknown payment method %q", s)
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p PaymentMethod) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentMethodUnknown
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = PaymentMethod(v)
	case int32:
		*p = PaymentMethod(v)
	case int:
		*p = PaymentMethod(v)
	}
	return nil
}
