package http

import (
	"strings"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
)

// addressContextName is the substring identifying the conversation
// context that carries the captured addresses.
const addressContextName = "adresse_donnee"

// webhookRequest mirrors the subset of the fulfillment payload the intent
// router reads.
type webhookRequest struct {
	QueryResult struct {
		Intent struct {
			DisplayName string `json:"displayName"`
		} `json:"intent"`
		OutputContexts []outputContext `json:"outputContexts"`
	} `json:"queryResult"`
}

type outputContext struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// addressContext locates the context carrying adresse_depart,
// adresse_arrivee, and nom_client. Returns nil when absent.
func (r *webhookRequest) addressContext() *outputContext {
	for i := range r.QueryResult.OutputContexts {
		if strings.Contains(r.QueryResult.OutputContexts[i].Name, addressContextName) {
			return &r.QueryResult.OutputContexts[i]
		}
	}
	return nil
}

// addressParam decodes a context parameter into a formatted address. A
// plain string has already been formatted and is passed through
// untouched; a structured location is flattened field by field.
func addressParam(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		return domain.FormatAddress(&domain.Location{
			Street:    stringField(v, "street-address"),
			City:      stringField(v, "city"),
			AdminArea: stringField(v, "admin-area"),
			Country:   stringField(v, "country"),
		})
	default:
		return ""
	}
}

func stringField(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}
