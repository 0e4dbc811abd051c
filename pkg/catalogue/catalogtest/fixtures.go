// Package catalogtest provides a fixed listing collection for tests.
package catalogtest

import domain "github.com/infinitidrive/infiniti-drive/pkg/types"

// Bikes returns the seven-listing showroom collection in CMS order. Each call
// returns a fresh slice.
func Bikes() []domain.Listing {
	return []domain.Listing{
		{ID: "1", Name: "Kawasaki Z900", Brand: "Kawasaki", Price: 952000, Year: 2025, KmDriven: 0, Owner: "1st", Engine: "948cc", FuelType: "Petrol", Transmission: "6-speed", TopSpeed: 240, Mileage: 17},
		{ID: "2", Name: "Triumph Street Triple RS", Brand: "Triumph", Price: 1209900, Year: 2023, KmDriven: 0, Owner: "1st", Engine: "765cc", FuelType: "Petrol", Transmission: "6-speed", TopSpeed: 250, Mileage: 18},
		{ID: "3", Name: "BMW S1000RR", Brand: "BMW", Price: 2075000, Year: 2025, KmDriven: 0, Owner: "1st", Engine: "999cc", FuelType: "Petrol", Transmission: "6-speed", TopSpeed: 303, Mileage: 15},
		{ID: "4", Name: "Ducati Panigale V4", Brand: "Ducati", Price: 2999000, Year: 2025, KmDriven: 0, Owner: "1st", Engine: "1103cc", FuelType: "Petrol", Transmission: "6-speed", TopSpeed: 299, Mileage: 14},
		{ID: "5", Name: "Harley-Davidson Street Rod", Brand: "Harley-Davidson", Price: 599000, Year: 2020, KmDriven: 8000, Owner: "2nd", Engine: "749cc", FuelType: "Petrol", Transmission: "6-speed", TopSpeed: 180, Mileage: 20},
		{ID: "6", Name: "Royal Enfield Himalayan 411", Brand: "Royal Enfield", Price: 191000, Year: 2023, KmDriven: 5000, Owner: "1st", Engine: "411cc", FuelType: "Petrol", Transmission: "5-speed", TopSpeed: 130, Mileage: 30},
		{ID: "7", Name: "BMW GS 310", Brand: "BMW", Price: 239990, Year: 2025, KmDriven: 0, Owner: "1st", Engine: "313cc", FuelType: "Petrol", Transmission: "6-speed", TopSpeed: 143, Mileage: 30},
	}
}

// AllSold returns Bikes with every listing marked sold.
func AllSold() []domain.Listing {
	bikes := Bikes()
	for i := range bikes {
		bikes[i].Sold = true
	}
	return bikes
}

// IDs returns the IDs of listings in order.
func IDs(listings []domain.Listing) []string {
	ids := make([]string, len(listings))
	for i := range listings {
		ids[i] = listings[i].ID
	}
	return ids
}
