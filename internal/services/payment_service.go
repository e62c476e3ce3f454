package services

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
	"helishuttle/internal/utils"
)

// PaymentConfig holds the manual payment channels shown to customers.
type PaymentConfig struct {
	UPIID          string
	PayeeName      string
	WhatsAppNumber string
	BankAccountNo  string
	BankIFSC       string
	BankName       string
}

type BankDetails struct {
	AccountNo string `json:"accountNo"`
	IFSC      string `json:"ifsc"`
	Name      string `json:"name"`
}

type PaymentInstructions struct {
	BookingID      int64       `json:"bookingId"`
	Amount         int64       `json:"amount"`
	AmountDisplay  string      `json:"amountDisplay"`
	UPILink        string      `json:"upiLink"`
	QRCodePNG      string      `json:"qrCodePng"`
	Bank           BankDetails `json:"bank"`
	WhatsAppNumber string      `json:"whatsappNumber,omitempty"`
	PaymentStatus  string      `json:"paymentStatus"`
}

const qrSize = 256

var referencePattern = regexp.MustCompile(`^[0-9]{5}$`)

type PaymentService struct {
	Config PaymentConfig
}

// UPILink builds the upi://pay deep link for amount rupees.
func (s PaymentService) UPILink(amount int64) (string, error) {
	upi := strings.TrimSpace(s.Config.UPIID)
	if upi == "" {
		return "", domain.InternalError{Msg: "upi payments are not configured"}
	}
	if amount <= 0 {
		return "", domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	return "upi://pay?pa=" + url.QueryEscape(upi) +
		"&pn=" + escapeText(s.Config.PayeeName) +
		"&am=" + strconv.FormatInt(amount, 10), nil
}

// QRCode renders content as a PNG.
func (s PaymentService) QRCode(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

func (s PaymentService) Instructions(b models.CustomerBooking) (PaymentInstructions, error) {
	link, err := s.UPILink(b.FinalTotal)
	if err != nil {
		return PaymentInstructions{}, err
	}
	png, err := s.QRCode(link)
	if err != nil {
		return PaymentInstructions{}, domain.InternalError{Err: err}
	}
	return PaymentInstructions{
		BookingID:     b.ID,
		Amount:        b.FinalTotal,
		AmountDisplay: utils.FormatRupees(b.FinalTotal),
		UPILink:       link,
		QRCodePNG:     base64.StdEncoding.EncodeToString(png),
		Bank: BankDetails{
			AccountNo: s.Config.BankAccountNo,
			IFSC:      s.Config.BankIFSC,
			Name:      s.Config.BankName,
		},
		WhatsAppNumber: utils.DigitsOnly(s.Config.WhatsAppNumber),
		PaymentStatus:  string(b.PaymentStatus),
	}, nil
}

// ValidateReference accepts exactly the last five digits of a transaction id.
func ValidateReference(suffix string) (string, error) {
	suffix = strings.TrimSpace(suffix)
	if !referencePattern.MatchString(suffix) {
		return "", domain.ValidationError{Field: "transactionRef", Msg: "must be exactly 5 digits"}
	}
	return suffix, nil
}

// WhatsAppLink prefills a chat with the booking id and transaction suffix.
func (s PaymentService) WhatsAppLink(bookingID int64, suffix string) (string, error) {
	num := utils.DigitsOnly(s.Config.WhatsAppNumber)
	if num == "" {
		return "", domain.InternalError{Msg: "whatsapp number is not configured"}
	}
	text := fmt.Sprintf("Booking ID: %d. Transaction ID (last 5 digits): %s.", bookingID, suffix)
	return "https://wa.me/" + num + "?text=" + escapeText(text), nil
}

func escapeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
