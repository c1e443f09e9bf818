package emissions

import (
	"errors"
	"testing"
)

func TestShipmentMass_FromMass(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		unit   string
		want   float64
	}{
		{name: "grams", amount: 5000000, unit: MassUnitGram, want: 5.0},
		{name: "kilograms", amount: 2000, unit: MassUnitKilogram, want: 2.0},
		{name: "tonnes", amount: 3.5, unit: MassUnitTonne, want: 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShipmentMass(&Shipment{Mass: &Mass{Amount: tt.amount, Unit: tt.unit}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestShipmentMass_FromContainers(t *testing.T) {
	tests := []struct {
		name       string
		containers int
		cargoType  string
		want       float64
	}{
		{name: "average", containers: 3, cargoType: CargoTypeAverage, want: 30.0},
		{name: "lightweight", containers: 2, cargoType: CargoTypeLightweight, want: 12.0},
		{name: "heavyweight", containers: 2, cargoType: CargoTypeHeavyweight, want: 29.0},
		{name: "container only", containers: 4, cargoType: CargoTypeContainerOnly, want: 8.0},
		{name: "default cargo type", containers: 3, cargoType: "", want: 30.0},
		{name: "unknown cargo type falls back to average", containers: 3, cargoType: "fluffy", want: 30.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShipmentMass(&Shipment{Containers: tt.containers, CargoType: tt.cargoType})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestShipmentMass_MassTakesPriorityOverContainers(t *testing.T) {
	got, err := ShipmentMass(&Shipment{
		Mass:       &Mass{Amount: 1000, Unit: MassUnitKilogram},
		Containers: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("got %f, want 1.0", got)
	}
}

func TestShipmentMass_MissingBoth(t *testing.T) {
	_, err := ShipmentMass(&Shipment{})
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}
}
