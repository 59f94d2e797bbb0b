package widget

import (
	"net/url"
	"strings"

	"github.com/antinvestor/shop-widget/commerce"
	"github.com/antinvestor/shop-widget/money"
)

// PaymentRedirectURL appends the order's id, number, 2-decimal total
// and currency to the configured payment URL, reusing its query string
// when it already has one.
func PaymentRedirectURL(paymentURL string, order *commerce.Order) string {
	sep := "?"
	if strings.Contains(paymentURL, "?") {
		sep = "&"
	}

	var total money.Money
	var currency string
	if order.Total != nil {
		total = *order.Total
		currency = order.Total.CurrencyCode
	}

	return paymentURL + sep +
		"orderId=" + url.QueryEscape(order.ID) +
		"&orderNumber=" + url.QueryEscape(order.OrderNumber) +
		"&total=" + url.QueryEscape(total.Decimal()) +
		"&currency=" + url.QueryEscape(currency)
}
