package services

import (
	"fmt"
	"log"
	"os"

	razorpay "github.com/razorpay/razorpay-go"
)

var (
	RazorpayClient *razorpay.Client
	RazorpayKeyID  string
)

// ConnectRazorpay initialise le client de la passerelle de paiement.
func ConnectRazorpay() {
	key := os.Getenv("RAZORPAY_KEY_ID")
	secret := os.Getenv("RAZORPAY_KEY_SECRET")

	if key == "" || secret == "" {
		log.Fatal("❌ Impossible d'initialiser Razorpay : clé ou secret manquant")
	}

	RazorpayClient = razorpay.NewClient(key, secret)
	RazorpayKeyID = key
	log.Println("✅ Razorpay initialisé")
}

// CreateGatewayOrder crée une commande côté passerelle.
// Le montant est attendu en unités majeures ; la passerelle travaille en paise (×100).
func CreateGatewayOrder(amount float64, receipt string) (map[string]interface{}, error) {
	if RazorpayClient == nil {
		return nil, fmt.Errorf("client Razorpay non initialisé")
	}

	data := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": "INR",
		"receipt":  receipt,
	}

	return RazorpayClient.Order.Create(data, nil)
}

// FetchGatewayPayment relit un paiement côté passerelle (confirmation de capture).
func FetchGatewayPayment(paymentID string) (map[string]interface{}, error) {
	if RazorpayClient == nil {
		return nil, fmt.Errorf("client Razorpay non initialisé")
	}
	return RazorpayClient.Payment.Fetch(paymentID, nil, nil)
}
