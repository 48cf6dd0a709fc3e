package di

import (
	bikeRepository "rental/internal/domains/bike/repository"
	carRepository "rental/internal/domains/car/repository"
	vehicleModel "rental/internal/domains/vehicle/model"
	vehicleRepository "rental/internal/domains/vehicle/repository"
)

// provideVehicleStores registers every vehicle table under its type tag.
func provideVehicleStores(cars carRepository.Car, bikes bikeRepository.Bike) vehicleRepository.Stores {
	return vehicleRepository.Stores{
		vehicleModel.TypeCar:  cars,
		vehicleModel.TypeBike: bikes,
	}
}
