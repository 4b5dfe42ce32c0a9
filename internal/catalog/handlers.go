package catalog

import (
	"net/http"

	"github.com/nyc-burger-co/kiosk-api/internal/common"
)

// Handler exposes the menu-duo catalog over HTTP.
type Handler struct {
	Provider Provider
}

// MenuDuo lists catalog sides and drinks for the kiosk UI.
func (h *Handler) MenuDuo(w http.ResponseWriter, r *http.Request) {
	if h.Provider == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"sides":  itemsJSON(h.Provider.Sides()),
			"drinks": itemsJSON(h.Provider.Drinks()),
		},
	})
}

func itemsJSON(items []SideItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]any{
			"id":    it.ID,
			"name":  it.Name,
			"price": it.Price,
			"image": it.Image,
			"type":  string(it.Type),
		})
	}
	return out
}
