package domain

import "testing"

func TestNewMenuItem(t *testing.T) {
	tests := []struct {
		name     string
		itemName string
		category Category
		price    string
		wantErr  bool
	}{
		{"valid", "Plov", CategoryMainCourse, "2500.00", false},
		{"free item", "Water", CategoryBeverage, "0", false},
		{"blank name", "   ", CategoryDessert, "10", true},
		{"unknown category", "Soup", Category("soup"), "10", true},
		{"negative price", "Tea", CategoryBeverage, "-1", true},
		{"sub-cent price", "Tea", CategoryBeverage, "1.005", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMenuItem(tt.itemName, "", tt.category, dec(tt.price), true)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMenuItem() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("NewMenuItem() error type = %T, want ValidationErrors", err)
			}
		})
	}
}
