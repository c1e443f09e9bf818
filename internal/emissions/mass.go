package emissions

import (
	"fmt"
)

// cargoDensityTonnes maps a cargo type to an assumed mass per container in
// tonnes.
var cargoDensityTonnes = map[string]float64{
	CargoTypeLightweight:   6.0,
	CargoTypeAverage:       10.0,
	CargoTypeHeavyweight:   14.5,
	CargoTypeContainerOnly: 2.0,
}

// ShipmentMass computes the shipment mass in tonnes, from either an
// explicit mass or a container count. An unknown cargo type silently falls
// back to average, matching the reference dataset's documented policy.
func ShipmentMass(shipment *Shipment) (float64, error) {
	if shipment.Mass != nil {
		return convertMassToTonnes(shipment.Mass.Amount, shipment.Mass.Unit), nil
	}

	if shipment.Containers > 0 {
		density, ok := cargoDensityTonnes[shipment.CargoType]
		if !ok {
			density = cargoDensityTonnes[CargoTypeAverage]
		}
		return float64(shipment.Containers) * density, nil
	}

	return 0, fmt.Errorf("%w: either mass or containers must be provided", ErrMissingInput)
}

func convertMassToTonnes(amount float64, unit string) float64 {
	switch unit {
	case MassUnitGram:
		return amount / 1e6
	case MassUnitKilogram:
		return amount / 1e3
	default:
		// Tonnes need no conversion.
		return amount
	}
}
