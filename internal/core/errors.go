package core

import "accounting-backend/internal/apperr"

// constraintMessages maps schema constraint names to caller-facing messages.
var constraintMessages = map[string]string{
	apperr.InvoiceNumberConstraint: "invoice number already exists",
	"fatura_cari_id_fkey":          "selected party does not exist",
	"fatura_detay_fatura_id_fkey":  "invoice does not exist",
	"fatura_detay_urun_id_fkey":    "selected product does not exist",
	"fatura_detay_birim_id_fkey":   "selected unit does not exist",
	"urun_birim_id_fkey":           "selected unit does not exist",
	"urun_barkod_key":              "barcode already registered",
	"urun_adi_key":                 "product name already registered",
	"cari_adi_soyadi_key":          "party name already registered",
	"cari_tc_kimlik_no_key":        "national identifier already registered",
	"birim_kisa_adi_adi_key":       "unit short name and name already registered",
	"kullanici_kullanici_adi_key":  "username already taken",
}

// describe keeps err's classification and replaces the generic storage
// message with the one registered for the violated constraint.
func describe(err error) error {
	e, ok := apperr.As(err)
	if !ok {
		return err
	}
	constraint := apperr.ConstraintOf(err)
	msg, known := constraintMessages[constraint]
	if !known {
		return err
	}
	return &apperr.Error{Kind: e.Kind, Message: msg, Constraint: constraint, Err: err}
}

// inUse converts a foreign-key failure raised by a delete into the conflict
// the delete guard would have reported.
func inUse(err error, message string) error {
	if apperr.Is(err, apperr.KindReferentialIntegrity) {
		return &apperr.Error{Kind: apperr.KindConflict, Message: message, Constraint: apperr.ConstraintOf(err), Err: err}
	}
	return err
}
