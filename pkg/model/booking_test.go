package model

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 5, d, 12, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name string
		a1   time.Time
		a2   time.Time
		b1   time.Time
		b2   time.Time
		want bool
	}{
		{name: "disjoint before", a1: day(1), a2: day(3), b1: day(4), b2: day(6), want: false},
		{name: "disjoint after", a1: day(4), a2: day(6), b1: day(1), b2: day(3), want: false},
		{name: "partial overlap", a1: day(1), a2: day(3), b1: day(2), b2: day(4), want: true},
		{name: "contained", a1: day(1), a2: day(6), b1: day(2), b2: day(3), want: true},
		{name: "identical", a1: day(1), a2: day(3), b1: day(1), b2: day(3), want: true},
		{name: "back to back", a1: day(1), a2: day(3), b1: day(3), b2: day(5), want: false},
		{name: "back to back reversed", a1: day(3), a2: day(5), b1: day(1), b2: day(3), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a1, tc.a2, tc.b1, tc.b2); got != tc.want {
				t.Errorf("Overlaps(%v,%v,%v,%v) = %v, want %v",
					tc.a1, tc.a2, tc.b1, tc.b2, got, tc.want)
			}
		})
	}
}

func TestActorCapabilities(t *testing.T) {
	superAdmin := &Actor{Role: RoleSuperAdmin}
	admin := &Actor{Role: RoleAdmin}
	customer := &Actor{Role: RoleCustomer}

	if !superAdmin.CanManageBookings() || !admin.CanManageBookings() {
		t.Error("operators must manage bookings")
	}
	if customer.CanManageBookings() {
		t.Error("customers must not manage bookings")
	}

	if !superAdmin.CanDeleteInventory() {
		t.Error("super admin must delete inventory")
	}
	if admin.CanDeleteInventory() || customer.CanDeleteInventory() {
		t.Error("only super admin may delete inventory")
	}

	if !customer.ViewsOwnBookingsOnly() {
		t.Error("customers are scoped to own bookings")
	}
	if admin.ViewsOwnBookingsOnly() || superAdmin.ViewsOwnBookingsOnly() {
		t.Error("operators see all bookings")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleSuperAdmin, RoleAdmin, RoleCustomer} {
		if !ValidRole(role) {
			t.Errorf("expected %s to be valid", role)
		}
	}
	for _, role := range []string{"", "admin", "ROOT"} {
		if ValidRole(role) {
			t.Errorf("expected %q to be invalid", role)
		}
	}
}
