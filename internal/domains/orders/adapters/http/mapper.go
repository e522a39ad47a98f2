package http

import "github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"

// orderResponse is the transport shape of a persisted order. JSON field
// names keep the historical listing contract.
type orderResponse struct {
	DepartureAddress string `json:"adresseDepart"`
	ArrivalAddress   string `json:"adresseArrivee"`
	Tariff           string `json:"tarif"`
	Date             string `json:"date"`
	ClientName       string `json:"nomClient"`
	Reference        string `json:"refCommande"`
}

func fromDomainOrders(orders []*domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, orderResponse{
			DepartureAddress: order.DepartureAddress,
			ArrivalAddress:   order.ArrivalAddress,
			Tariff:           order.Tariff,
			Date:             order.Date,
			ClientName:       order.ClientName,
			Reference:        order.Reference,
		})
	}
	return out
}
