package dto

import "fish-logistics-service/internal/domain"

type ListPortsResponse struct {
	Ports []domain.Port `json:"ports"`
}

type ListTrucksResponse struct {
	Trucks []domain.Truck `json:"trucks"`
}

type ListMarketsResponse struct {
	Markets []domain.Market `json:"markets"`
}

type ListColdStoragesResponse struct {
	ColdStorages []domain.ColdStorage `json:"cold_storages"`
}
