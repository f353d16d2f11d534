package model

import "testing"

func TestValidItemStatus(t *testing.T) {
	for _, status := range ItemStatuses {
		if !ValidItemStatus(status) {
			t.Errorf("expected %q to be a valid status", status)
		}
	}
	if ValidItemStatus("returned") {
		t.Error("expected 'returned' to be invalid")
	}
	if ValidItemStatus("") {
		t.Error("expected empty status to be invalid")
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, method := range PaymentMethods {
		if !ValidPaymentMethod(method) {
			t.Errorf("expected %q to be a valid method", method)
		}
	}
	if ValidPaymentMethod("bitcoin") {
		t.Error("expected 'bitcoin' to be invalid")
	}
}
