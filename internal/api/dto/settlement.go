package dto

import (
	"gazetteer-service/internal/domain"
	"gazetteer-service/internal/gazetteer"
)

type SettlementResponse struct {
	AncientName string  `json:"ancient_name"`
	ModernName  string  `json:"modern_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Type        string  `json:"type"`
}

type ListSettlementsResponse struct {
	Count       int                  `json:"count"`
	Settlements []SettlementResponse `json:"settlements"`
}

type NeighborResponse struct {
	SettlementResponse
	DistanceKm float64 `json:"distance_km"`
}

type NearestResponse struct {
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	K         int                `json:"k"`
	Neighbors []NeighborResponse `json:"neighbors"`
}

type TypeCountResponse struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type TypesResponse struct {
	Types []TypeCountResponse `json:"types"`
}

type DuplicatesResponse struct {
	MaxKm  float64                `json:"max_km"`
	Groups [][]SettlementResponse `json:"groups"`
}

func NewSettlementResponse(s domain.Settlement) SettlementResponse {
	return SettlementResponse{
		AncientName: s.AncientName,
		ModernName:  s.ModernName,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Type:        s.Type,
	}
}

func NewListSettlementsResponse(settlements []domain.Settlement) ListSettlementsResponse {
	res := ListSettlementsResponse{
		Count:       len(settlements),
		Settlements: make([]SettlementResponse, 0, len(settlements)),
	}
	for _, s := range settlements {
		res.Settlements = append(res.Settlements, NewSettlementResponse(s))
	}
	return res
}

func NewNearestResponse(lat, lng float64, k int, neighbors []gazetteer.Neighbor) NearestResponse {
	res := NearestResponse{
		Latitude:  lat,
		Longitude: lng,
		K:         k,
		Neighbors: make([]NeighborResponse, 0, len(neighbors)),
	}
	for _, n := range neighbors {
		res.Neighbors = append(res.Neighbors, NeighborResponse{
			SettlementResponse: NewSettlementResponse(n.Settlement),
			DistanceKm:         n.DistanceKm,
		})
	}
	return res
}

func NewTypesResponse(types []gazetteer.TypeCount) TypesResponse {
	res := TypesResponse{Types: make([]TypeCountResponse, 0, len(types))}
	for _, t := range types {
		res.Types = append(res.Types, TypeCountResponse{Type: t.Type, Count: t.Count})
	}
	return res
}

func NewDuplicatesResponse(maxKm float64, groups [][]domain.Settlement) DuplicatesResponse {
	res := DuplicatesResponse{MaxKm: maxKm, Groups: make([][]SettlementResponse, 0, len(groups))}
	for _, g := range groups {
		members := make([]SettlementResponse, 0, len(g))
		for _, s := range g {
			members = append(members, NewSettlementResponse(s))
		}
		res.Groups = append(res.Groups, members)
	}
	return res
}
