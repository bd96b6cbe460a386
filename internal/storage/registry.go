package storage

import (
	"rideshare/internal/drivers"
	"rideshare/internal/riders"
	"rideshare/internal/schema"
	"rideshare/internal/trips"
)

// DomainRegistry assembles the schema registry. Order is FK-safe:
// dispatch_offers comes last because it refers to both trips and drivers.
func DomainRegistry() (*schema.Registry, error) {
	reg := schema.NewRegistry()
	objects := []schema.Object{
		riders.Object(),
		drivers.Object(),
		trips.Object(),
		trips.StopObject(),
		drivers.OfferObject(),
	}
	for _, obj := range objects {
		if err := reg.Register(obj); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
