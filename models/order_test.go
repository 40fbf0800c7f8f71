package models

import "testing"

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    OrderStatus
		wantErr bool
	}{
		{"pending", OrderStatusPending, false},
		{"CONFIRMED", OrderStatusConfirmed, false},
		{"preparing", OrderStatusPreparing, false},
		{"delivering", OrderStatusDelivering, false},
		{"delivered", OrderStatusDelivered, false},
		{"cancelled", OrderStatusCancelled, false},
		{"shipped", "", true},
		{"completed", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseOrderStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseOrderStatus(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOrderStatus(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseOrderStatus(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusPreparing},
		{OrderStatusPreparing, OrderStatusDelivering},
		{OrderStatusDelivering, OrderStatusDelivered},
		{OrderStatusDelivering, OrderStatusCancelled},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusDelivered, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusConfirmed},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusPending, OrderStatusPending},
	}
	for _, tc := range forbidden {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}
}

func TestParsePaymentMethod(t *testing.T) {
	if m, err := ParsePaymentMethod("cash"); err != nil || m != PaymentMethodCash {
		t.Errorf("ParsePaymentMethod(cash) = %s, %v", m, err)
	}
	if m, err := ParsePaymentMethod("Link"); err != nil || m != PaymentMethodLink {
		t.Errorf("ParsePaymentMethod(Link) = %s, %v", m, err)
	}
	if _, err := ParsePaymentMethod("card"); err == nil {
		t.Error("ParsePaymentMethod(card): expected error")
	}
}
