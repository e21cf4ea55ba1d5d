package controllers

import (
	"fmt"
	"html/template"

	"storefront/models"
)

type receiptItem struct {
	Name      string
	Quantity  int
	Price     string
	LineTotal string
}

type receiptData struct {
	OrderID string
	Date    string
	Email   string
	Status  string
	Items   []receiptItem
	Total   string
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func newReceiptData(order *models.Order) receiptData {
	items := make([]receiptItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, receiptItem{
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			Price:     dollars(item.PriceCents),
			LineTotal: dollars(item.PriceCents * int64(item.Quantity)),
		})
	}
	return receiptData{
		OrderID: order.ID.String(),
		Date:    order.CreatedAt.Format("January 2, 2006"),
		Email:   order.Email,
		Status:  order.Status,
		Items:   items,
		Total:   dollars(order.TotalCents),
	}
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Receipt - Order #{{.OrderID}}</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; max-width: 800px; margin: 40px auto; padding: 20px; background: #f9fafb; }
    .receipt { background: white; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); overflow: hidden; }
    .header { background: #2563eb; color: white; padding: 40px; text-align: center; }
    .content { padding: 40px; }
    .info-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 32px; margin-bottom: 32px; padding-bottom: 32px; border-bottom: 1px solid #e5e7eb; }
    .info-item label { display: block; font-size: 12px; color: #6b7280; text-transform: uppercase; margin-bottom: 4px; }
    .info-item div { font-size: 18px; font-weight: 600; color: #111827; }
    .items-table { width: 100%; margin-bottom: 32px; }
    .items-table th { text-align: left; font-size: 12px; color: #6b7280; text-transform: uppercase; padding-bottom: 16px; border-bottom: 1px solid #e5e7eb; }
    .items-table td { padding: 16px 0; border-bottom: 1px solid #f3f4f6; }
    .total-row { border-top: 2px solid #111827; padding-top: 16px; display: flex; justify-content: space-between; }
    .total-row .amount { font-size: 32px; font-weight: 700; color: #111827; }
    .footer { background: #f9fafb; padding: 24px 40px; text-align: center; color: #6b7280; font-size: 14px; }
    @media print { body { background: white; margin: 0; } .receipt { box-shadow: none; } }
  </style>
</head>
<body>
  <div class="receipt">
    <div class="header">
      <h1>Order Receipt</h1>
    </div>
    <div class="content">
      <div class="info-grid">
        <div class="info-item"><label>Order Number</label><div>#{{.OrderID}}</div></div>
        <div class="info-item"><label>Date</label><div>{{.Date}}</div></div>
        <div class="info-item"><label>Email</label><div>{{.Email}}</div></div>
        <div class="info-item"><label>Status</label><div>{{.Status}}</div></div>
      </div>
      <table class="items-table">
        <thead>
          <tr><th>Item</th><th style="text-align: right">Qty</th><th style="text-align: right">Price</th><th style="text-align: right">Total</th></tr>
        </thead>
        <tbody>
          {{range .Items}}
          <tr>
            <td>{{.Name}}</td>
            <td style="text-align: right">{{.Quantity}}</td>
            <td style="text-align: right">{{.Price}}</td>
            <td style="text-align: right">{{.LineTotal}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
      <div class="total-row">
        <span>Total</span>
        <span class="amount">{{.Total}}</span>
      </div>
    </div>
    <div class="footer">
      <p>Thank you for your purchase!</p>
    </div>
  </div>
</body>
</html>
`))
