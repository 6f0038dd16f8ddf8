package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewRestaurant(t *testing.T) {
	ownerID := uuid.New()
	restaurant, err := NewRestaurant(ownerID, "맛있는 식당", "021231234", 15000, 3000, "Korean food", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if restaurant.OwnerID != ownerID {
		t.Errorf("Expected owner %s, got %s", ownerID, restaurant.OwnerID)
	}
	if restaurant.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestRestaurantValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Restaurant)
		wantErr bool
	}{
		{"valid", func(r *Restaurant) {}, false},
		{"empty name", func(r *Restaurant) { r.Name = "" }, true},
		{"name too long", func(r *Restaurant) { r.Name = strings.Repeat("a", 41) }, true},
		{"telephone too short", func(r *Restaurant) { r.TelephoneNumber = "12345678" }, true},
		{"telephone too long", func(r *Restaurant) { r.TelephoneNumber = "012345678901" }, true},
		{"telephone with letters", func(r *Restaurant) { r.TelephoneNumber = "02123123a" }, true},
		{"negative order cost", func(r *Restaurant) { r.MinimumOrderCost = -1 }, true},
		{"negative delivery cost", func(r *Restaurant) { r.MinimumDeliveryCost = -1 }, true},
		{"zero costs", func(r *Restaurant) { r.MinimumOrderCost = 0; r.MinimumDeliveryCost = 0 }, false},
		{"nil owner", func(r *Restaurant) { r.OwnerID = uuid.Nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restaurant, err := NewRestaurant(uuid.New(), "식당", "021231234", 10000, 2000, "", "")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			tt.mutate(restaurant)
			err = restaurant.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewMenuItem(t *testing.T) {
	restaurantID := uuid.New()
	item, err := NewMenuItem(restaurantID, "김치찌개", "spicy stew", 9000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !item.IsAvailable {
		t.Error("Expected a new menu item to be available")
	}
	if item.RestaurantID != restaurantID {
		t.Errorf("Expected restaurant %s, got %s", restaurantID, item.RestaurantID)
	}
}

func TestMenuItemValidate(t *testing.T) {
	tests := []struct {
		name        string
		itemName    string
		description string
		price       int
		wantErr     bool
	}{
		{"valid", "라면", "noodles", 5000, false},
		{"empty name", "", "", 5000, true},
		{"name too long", strings.Repeat("a", 21), "", 5000, true},
		{"description too long", "라면", strings.Repeat("a", 101), 5000, true},
		{"zero price", "라면", "", 0, true},
		{"negative price", "라면", "", -100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMenuItem(uuid.New(), tt.itemName, tt.description, tt.price)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMenuItem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
