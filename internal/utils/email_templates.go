package utils

import (
	"fmt"

	"neroli_back_end/internal/models"
)

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order, userEmail string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
			</tr>`,
			item.Name, item.Size, item.Quantity,
			FormatPrice(item.Price, order.ShippingAddress.Country),
			FormatPrice(item.Price*float64(item.Quantity), order.ShippingAddress.Country))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Georgia, serif; background-color: #faf7f2; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 30px; border-radius: 10px;">
		<h1 style="color: #1f1a14; letter-spacing: 2px; text-align: center;">MAISON NÉROLI</h1>
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>%s</strong> a été confirmée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0ece4;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Parfum</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Format</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p style="font-size: 18px;"><strong>Total : %s</strong></p>

		<h3>Adresse de livraison</h3>
		<p>%s<br>%s<br>%s %s<br>%s</p>

		<p style="color: #777; font-size: 12px; margin-top: 30px;">
			Cet e-mail a été envoyé à %s. Votre facture est jointe à ce message.
		</p>
	</div>
</body>
</html>`,
		order.ID.Hex(), itemsHTML,
		FormatPrice(order.TotalAmount, order.ShippingAddress.Country),
		order.ShippingAddress.Name, order.ShippingAddress.Street,
		order.ShippingAddress.PostalCode, order.ShippingAddress.City,
		order.ShippingAddress.Country, userEmail)
}

// GenerateInvoiceHTML génère le HTML de la facture, imprimé ensuite en PDF.
func GenerateInvoiceHTML(order models.Order, userEmail string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s %s</td>
				<td style="text-align: center;">%d</td>
				<td style="text-align: right;">%s</td>
				<td style="text-align: right;">%s</td>
			</tr>`,
			item.Name, item.Size, item.Quantity,
			FormatPrice(item.Price, order.ShippingAddress.Country),
			FormatPrice(item.Price*float64(item.Quantity), order.ShippingAddress.Country))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Georgia, serif; color: #1f1a14; margin: 40px; }
		h1 { letter-spacing: 3px; }
		table { width: 100%%; border-collapse: collapse; margin-top: 30px; }
		th, td { border-bottom: 1px solid #ccc; padding: 8px; text-align: left; }
		.total { font-size: 18px; font-weight: bold; text-align: right; margin-top: 20px; }
	</style>
</head>
<body>
	<h1>MAISON NÉROLI</h1>
	<p>Facture — commande %s<br>Client : %s<br>Paiement : %s</p>
	<table>
		<thead>
			<tr><th>Parfum</th><th>Quantité</th><th>Prix unitaire</th><th>Total</th></tr>
		</thead>
		<tbody>%s</tbody>
	</table>
	<p class="total">Total : %s</p>
</body>
</html>`,
		order.ID.Hex(), userEmail, order.PaymentInfo.RazorpayPaymentID, itemsHTML,
		FormatPrice(order.TotalAmount, order.ShippingAddress.Country))
}
