// Package charts turns aggregation results into Plotly figures and
// renders them into a single HTML dashboard.
package charts

import (
	"strconv"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"

	"spendreport/internal/core"
)

const (
	plotBgColor   = "white"
	gridColor     = "#ebf0f8"
	spendAxis     = "Total Spend ($)"
	donutHole     = 0.3
	bubbleMaxSize = 20.0
)

// Figure IDs, also used as element ids in the dashboard.
const (
	SupplierBarID   = "supplier-bar"
	SupplierDonutID = "supplier-donut"
	ModelBarID      = "model-bar"
	TopModelsID     = "top-models-donut"
	BuyerBubbleID   = "buyer-bubble"
)

// Figure is one Plotly figure and the dashboard element it is drawn in.
type Figure struct {
	ID    string    `json:"id"`
	Title string    `json:"-"`
	Fig   *grob.Fig `json:"figure"`
}

func figure(id, title string, trace grob.Trace, layout *grob.Layout) Figure {
	layout.Title = &grob.LayoutTitle{Text: title}
	layout.PlotBgcolor = plotBgColor
	return Figure{
		ID:    id,
		Title: title,
		Fig:   &grob.Fig{Data: grob.Traces{trace}, Layout: layout},
	}
}

func spendYAxis() *grob.LayoutYaxis {
	return &grob.LayoutYaxis{
		Title:     &grob.LayoutYaxisTitle{Text: spendAxis},
		Gridcolor: gridColor,
	}
}

// SupplierBar charts total spend per supplier.
func SupplierBar(spend []core.SupplierSpend) Figure {
	x := make([]string, len(spend))
	y := make([]float64, len(spend))
	for i, s := range spend {
		x[i] = s.Supplier
		y[i] = s.Total.Dollars()
	}
	hide := false
	fig := figure(SupplierBarID, "Spend by Supplier - Bar Chart",
		&grob.Bar{Type: grob.TraceTypeBar, X: x, Y: y},
		&grob.Layout{
			Height:     600,
			Showlegend: &hide,
			Xaxis: &grob.LayoutXaxis{
				Title:     &grob.LayoutXaxisTitle{Text: "Supplier Name"},
				Tickangle: -45,
			},
			Yaxis: spendYAxis(),
		})
	fig.Fig.Layout.Title.X = 0.5
	return fig
}

// SupplierDonut shows each supplier's share of spend.
func SupplierDonut(spend []core.SupplierSpend) Figure {
	labels := make([]string, len(spend))
	values := make([]float64, len(spend))
	for i, s := range spend {
		labels[i] = s.Supplier
		values[i] = s.Total.Dollars()
	}
	fig := figure(SupplierDonutID, "Supplier Spend Distribution",
		&grob.Pie{Type: grob.TraceTypePie, Labels: labels, Values: values, Hole: donutHole},
		&grob.Layout{
			Height: 600,
			Legend: &grob.LayoutLegend{
				Orientation: "h",
				Yanchor:     "bottom",
				Y:           -0.3,
				Xanchor:     "center",
				X:           0.5,
			},
		})
	fig.Fig.Layout.Title.X = 0.5
	return fig
}

// ModelBar charts spend per item model in the order given, which is
// descending by spend when fed from analysis.SpendByModel.
func ModelBar(spend []core.ModelSpend) Figure {
	x := make([]string, len(spend))
	y := make([]float64, len(spend))
	for i, s := range spend {
		x[i] = s.Model
		y[i] = s.Total.Dollars()
	}
	return figure(ModelBarID, "Spend by Item Model",
		&grob.Bar{Type: grob.TraceTypeBar, X: x, Y: y},
		&grob.Layout{
			Height: 700,
			Xaxis: &grob.LayoutXaxis{
				Title:     &grob.LayoutXaxisTitle{Text: "Item Model"},
				Tickangle: -45,
			},
			Yaxis:  spendYAxis(),
			Margin: &grob.LayoutMargin{B: 150},
		})
}

// TopModelsDonut shows the share of the given top models.
func TopModelsDonut(top []core.ModelSpend, n int) Figure {
	labels := make([]string, len(top))
	values := make([]float64, len(top))
	for i, s := range top {
		labels[i] = s.Model
		values[i] = s.Total.Dollars()
	}
	return figure(TopModelsID, topModelsTitle(n),
		&grob.Pie{Type: grob.TraceTypePie, Labels: labels, Values: values, Hole: donutHole},
		&grob.Layout{})
}

func topModelsTitle(n int) string {
	return "Top " + strconv.Itoa(n) + " Item Models by Spend"
}

// BuyerBubble plots distinct POs against spend per buyer, sized by the
// number of distinct suppliers.
func BuyerBubble(metrics []core.BuyerMetric) Figure {
	x := make([]int, len(metrics))
	y := make([]float64, len(metrics))
	text := make([]string, len(metrics))
	size := make([]float64, len(metrics))
	maxSize := 0.0
	for i, m := range metrics {
		x[i] = m.POCount
		y[i] = m.Total.Dollars()
		text[i] = m.Buyer
		size[i] = float64(m.SupplierCount)
		maxSize = max(maxSize, size[i])
	}

	marker := &grob.ScatterMarker{Size: size, Sizemode: "area", Sizemin: 4}
	if maxSize > 0 {
		marker.Sizeref = 2 * maxSize / (bubbleMaxSize * bubbleMaxSize)
	}

	return figure(BuyerBubbleID, "Buyer Analysis Dashboard",
		&grob.Scatter{
			Type:         grob.TraceTypeScatter,
			Mode:         "markers+text",
			X:            x,
			Y:            y,
			Text:         text,
			Textposition: "top center",
			Marker:       marker,
			Hovertemplate: "<b>%{text}</b><br>" +
				"POs: %{x}<br>" +
				"Spend: $%{y:,.2f}<br>" +
				"Suppliers: %{marker.size}<extra></extra>",
		},
		&grob.Layout{
			Xaxis: &grob.LayoutXaxis{Title: &grob.LayoutXaxisTitle{Text: "Number of Purchase Orders"}},
			Yaxis: spendYAxis(),
		})
}
