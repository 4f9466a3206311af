// Package pdf renders printable invoice documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	invoicedomain "github.com/ledgique/ledgique/internal/invoice/domain"
	"go.uber.org/fx"
)

const dateLayout = "2006-01-02"

// Renderer produces invoice documents for download.
type Renderer interface {
	RenderInvoice(ctx context.Context, invoice invoicedomain.Invoice, client clientdomain.Client) (io.Reader, error)
}

type renderer struct{}

func New() Renderer {
	return &renderer{}
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

func (r *renderer) RenderInvoice(ctx context.Context, invoice invoicedomain.Invoice, client clientdomain.Client) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Invoice "+invoice.InvoiceNumber, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Date of issue: "+invoice.IssueDate.Format(dateLayout), props.Text{Top: 0}),
			text.New("Date due: "+invoice.DueDate.Format(dateLayout), props.Text{Top: 4}),
			text.New("Status: "+string(invoice.Status), props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(client.Name, props.Text{Top: 5}),
			text.New(client.Company, props.Text{Top: 9}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range invoice.Items {
		m.AddRow(12,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%g", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, money(invoice.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, fmt.Sprintf("Tax (%.1f%%)", invoice.TaxRate), props.Text{Size: 9}),
		text.NewCol(2, money(invoice.TaxAmount), props.Text{Size: 9, Align: align.Right}),
	)
	if invoice.Discount > 0 {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, "-"+money(invoice.Discount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, money(invoice.Total), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if invoice.Notes != "" {
		m.AddRow(20,
			text.NewCol(12, invoice.Notes, props.Text{Size: 9, Top: 5}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
