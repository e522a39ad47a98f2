// Package http exposes the fulfillment webhook, the order listing
// endpoint, and static receipt files over gin.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/application"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
)

// Intent names assigned by the conversational platform.
const (
	IntentQuoteTariff     = "Calcul_Tarif"
	IntentConfirmDelivery = "Confirmation_Livraison"
)

// Reply texts. The platform renders them verbatim to the customer.
const (
	msgQuote           = "Le tarif entre %s et %s est de %s. Souhaitez-vous confirmer la livraison ?"
	msgQuoteNoRoute    = "Désolé, je n’ai pas pu calculer la distance entre %s et %s."
	msgQuoteError      = "Erreur lors du calcul du tarif."
	msgConfirmed       = "Livraison confirmée ! Bon envoyé à %s sur WhatsApp."
	msgConfirmNoRoute  = "Je n’ai pas pu confirmer la livraison à cause d’une erreur de distance."
	msgConfirmError    = "Erreur lors de la confirmation."
	msgReceiptError    = "Erreur PDF."
	msgUnhandledIntent = "Intent non géré : %s"
	msgBadPayload      = "Désolé, je n’ai pas compris la demande."
)

// WebhookAPI routes inbound conversational events to the orders service.
type WebhookAPI struct {
	service ports.Service
	logger  *slog.Logger
}

// NewWebhookAPI creates a WebhookAPI backed by the provided service.
func NewWebhookAPI(service ports.Service, logger *slog.Logger) *WebhookAPI {
	return &WebhookAPI{service: service, logger: logger}
}

// fulfillment is the reply payload expected by the platform.
type fulfillment struct {
	FulfillmentText string `json:"fulfillmentText"`
}

// Post /
// HandleWebhook processes one conversational event. The platform expects
// HTTP 200 in every handled case; failures vary the text, never the
// status.
func (api *WebhookAPI) HandleWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.logError(c, "malformed webhook payload", err)
		reply(c, msgBadPayload)
		return
	}

	var departure, arrival, clientName string
	if addrCtx := req.addressContext(); addrCtx != nil {
		departure = addressParam(addrCtx.Parameters["adresse_depart"])
		arrival = addressParam(addrCtx.Parameters["adresse_arrivee"])
		clientName, _ = addrCtx.Parameters["nom_client"].(string)
	}

	switch intent := req.QueryResult.Intent.DisplayName; intent {
	case IntentQuoteTariff:
		api.quoteTariff(c, departure, arrival)
	case IntentConfirmDelivery:
		api.confirmDelivery(c, departure, arrival, clientName)
	default:
		reply(c, fmt.Sprintf(msgUnhandledIntent, intent))
	}
}

func (api *WebhookAPI) quoteTariff(c *gin.Context, departure, arrival string) {
	tariff, err := api.service.QuoteTariff(c.Request.Context(), departure, arrival)
	if err != nil {
		var unavailable *application.DistanceUnavailableError
		if errors.As(err, &unavailable) {
			reply(c, fmt.Sprintf(msgQuoteNoRoute, unavailable.Departure, unavailable.Arrival))
			return
		}
		api.logError(c, "tariff quote failed", err)
		reply(c, msgQuoteError)
		return
	}
	reply(c, fmt.Sprintf(msgQuote, departure, arrival, tariff.Label()))
}

func (api *WebhookAPI) confirmDelivery(c *gin.Context, departure, arrival, clientName string) {
	confirmation, err := api.service.ConfirmDelivery(c.Request.Context(), ports.ConfirmDeliveryInput{
		DepartureAddress: departure,
		ArrivalAddress:   arrival,
		ClientName:       clientName,
	})
	if err != nil {
		var unavailable *application.DistanceUnavailableError
		switch {
		case errors.As(err, &unavailable):
			reply(c, msgConfirmNoRoute)
		case errors.Is(err, application.ErrReceiptWrite):
			api.logError(c, "delivery note generation failed", err)
			reply(c, msgReceiptError)
		default:
			api.logError(c, "delivery confirmation failed", err)
			reply(c, msgConfirmError)
		}
		return
	}
	reply(c, fmt.Sprintf(msgConfirmed, confirmation.Order.ClientName))
}

// Get /commandes
// ListOrders returns every persisted order. This is the one route that
// surfaces a real error status.
func (api *WebhookAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		api.logError(c, "order listing failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	c.JSON(http.StatusOK, fromDomainOrders(orders))
}

func (api *WebhookAPI) logError(c *gin.Context, msg string, err error) {
	if api.logger == nil {
		return
	}
	api.logger.ErrorContext(c.Request.Context(), msg, slog.String("error", err.Error()))
}

func reply(c *gin.Context, text string) {
	c.JSON(http.StatusOK, fulfillment{FulfillmentText: text})
}
