package services

import (
	"fmt"
	"strings"

	"github.com/health-center-lookup/app/models"
)

const (
	// NoMatchReply is sent when no record matches the message.
	NoMatchReply = "Não encontrei centros de saúde com essas informações. Tente especificar o nome, bairro ou distrito."

	phoneUnavailable = "não disponível"
)

// ReplyService renders the chat reply shown to the user. Replies are HTML
// fragments consumed by the web widget.
type ReplyService struct{}

// NewReplyService creates a ReplyService.
func NewReplyService() *ReplyService {
	return &ReplyService{}
}

// Format builds the reply for records found from entities. The layout
// depends on what was asked: a center name lists the records, a single
// neighborhood names it in the header, anything else groups by neighborhood
// under the district of the first record.
func (rs *ReplyService) Format(entities models.Entities, records []models.HealthCenter) string {
	if len(records) == 0 {
		return NoMatchReply
	}

	var b strings.Builder
	switch {
	case entities.CenterName != "":
		fmt.Fprintf(&b, "Encontrei %d centro(s) de saúde:", len(records))
		for _, rec := range records {
			writeCenterLine(&b, rec)
		}

	case entities.Neighborhood != "" && len(groupByNeighborhood(records)) == 1:
		fmt.Fprintf(&b, "Encontrei %d centro(s) de saúde no bairro %s:", len(records), records[0].Neighborhood)
		for _, rec := range records {
			writeCenterLine(&b, rec)
		}

	default:
		fmt.Fprintf(&b, "Encontrei %d centro(s) de saúde no distrito %s:<br>", len(records), records[0].District)
		for _, group := range groupByNeighborhood(records) {
			fmt.Fprintf(&b, "<br><br><b>Bairro %s:</b>", group.name)
			for _, rec := range group.records {
				writeCenterLine(&b, rec)
			}
		}
	}
	return b.String()
}

type neighborhoodGroup struct {
	name    string
	records []models.HealthCenter
}

// groupByNeighborhood keeps the order in which neighborhoods first appear.
func groupByNeighborhood(records []models.HealthCenter) []neighborhoodGroup {
	var groups []neighborhoodGroup
	index := make(map[string]int)
	for _, rec := range records {
		i, ok := index[rec.Neighborhood]
		if !ok {
			i = len(groups)
			index[rec.Neighborhood] = i
			groups = append(groups, neighborhoodGroup{name: rec.Neighborhood})
		}
		groups[i].records = append(groups[i].records, rec)
	}
	return groups
}

func writeCenterLine(b *strings.Builder, rec models.HealthCenter) {
	phone := rec.Phone
	if phone == "" {
		phone = phoneUnavailable
	}
	fmt.Fprintf(b, "<br>• <b>%s</b>: %s | Telefone: %s", rec.Name, rec.Address, phone)
}
