package codec

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/dmitrijs2005/contactpro/internal/models"
)

// ExportJSON pretty-prints the full records with a two space indent.
func ExportJSON(contacts []models.Contact) ([]byte, error) {
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return json.MarshalIndent(contacts, "", "  ")
}

// ImportJSON decodes an array of contact records as-is.
func ImportJSON(data []byte) ([]models.Contact, error) {
	var out []models.Contact
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: json: %v", common.ErrParse, err)
	}
	if out == nil {
		out = []models.Contact{}
	}
	return out, nil
}
