// Package receipt derives the purchase summary document from a cart
// snapshot.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kamehouse-store/storefront/cart"
)

// Config carries the figures that used to be hardcoded in the storefront.
type Config struct {
	TaxRate  float64 // IVA, applied over the subtotal
	Currency string
}

func DefaultConfig() Config {
	return Config{TaxRate: 0.16, Currency: "$"}
}

// Receipt is ephemeral: built for display and export, never persisted.
type Receipt struct {
	ID       string
	Date     time.Time
	Lines    []cart.Line
	Subtotal float64
	Tax      float64
	Total    float64
	Config   Config
}

// Generate snapshots the given lines and computes the totals once; display
// and export both read these values so the figures can never drift.
func Generate(lines []cart.Line, cfg Config) *Receipt {
	snapshot := make([]cart.Line, len(lines))
	copy(snapshot, lines)

	var subtotal float64
	for _, l := range snapshot {
		subtotal += l.Subtotal()
	}
	tax := subtotal * cfg.TaxRate

	now := time.Now()
	return &Receipt{
		ID:       now.Format("20060102150405") + "-" + uuid.NewString()[:8],
		Date:     now,
		Lines:    snapshot,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
		Config:   cfg,
	}
}

// Filename is the downloadable artifact name for this receipt.
func (r *Receipt) Filename() string {
	return fmt.Sprintf("Factura_Kamehouse_%s.txt", r.ID)
}

// Render produces the human-readable receipt text.
func (r *Receipt) Render() string {
	cur := r.Config.Currency
	var b strings.Builder

	b.WriteString("KameHouse Store\n")
	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "Factura: %s\n", r.ID)
	fmt.Fprintf(&b, "Fecha:   %s\n", r.Date.Format("02/01/2006 15:04"))
	b.WriteString("----------------------------------------\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%-24s x%-3d %s%8.2f\n", l.Nombre, l.Cantidad, cur, l.Subtotal())
	}
	b.WriteString("----------------------------------------\n")
	fmt.Fprintf(&b, "Subtotal:      %s%8.2f\n", cur, r.Subtotal)
	fmt.Fprintf(&b, "IVA (%.0f%%):     %s%8.2f\n", r.Config.TaxRate*100, cur, r.Tax)
	fmt.Fprintf(&b, "Total:         %s%8.2f\n", cur, r.Total)
	b.WriteString("========================================\n")
	b.WriteString("¡Gracias por tu compra!\n")

	return b.String()
}

// ExportTxt writes the rendered receipt under dir and returns the full path.
func (r *Receipt) ExportTxt(dir string) (string, error) {
	path := filepath.Join(dir, r.Filename())
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return "", fmt.Errorf("exportar factura: %w", err)
	}
	return path, nil
}
