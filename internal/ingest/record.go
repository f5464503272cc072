package ingest

import (
	"strings"

	"findash/internal/domain"
)

// record is one element of the input array.
type record map[string]interface{}

// document maps the top-level fields of a record to a documents row.
func (r record) document() (*domain.Document, error) {
	id := plainText(r["_id"])
	if id == nil || *id == "" {
		return nil, domain.ErrDocumentMissingID
	}
	name := plainText(r["name"])
	if name == nil {
		return nil, domain.ErrDocumentMissingName
	}

	return &domain.Document{
		ID:                 *id,
		Name:               *name,
		FilePath:           plainText(r["filePath"]),
		FileSize:           parseFileSize(r["fileSize"]),
		FileType:           plainText(r["fileType"]),
		Status:             plainText(r["status"]),
		OrganizationID:     r.ref("organizationId"),
		DepartmentID:       r.ref("departmentId"),
		UploadedByID:       r.ref("uploadedById"),
		IsValidatedByHuman: plainBool(r["isValidatedByHuman"]),
		CreatedAt:          ParseTimestamp(r["createdAt"]),
		UpdatedAt:          ParseTimestamp(r["updatedAt"]),
		ProcessedAt:        ParseTimestamp(r["processedAt"]),
		AnalyticsID:        plainText(r["analyticsId"]),
	}, nil
}

// ref returns a non-empty foreign-key reference, or nil.
func (r record) ref(key string) *string {
	s := plainText(r[key])
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// llmData returns the extraction output of the record. Records that were
// never extracted yield an empty section.
func (r record) llmData() map[string]interface{} {
	extracted, ok := r["extractedData"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	llm, ok := extracted["llmData"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return llm
}

// section unwraps a named container of llmData. A missing or non-object
// container is an empty section.
func section(llm map[string]interface{}, key string) map[string]interface{} {
	s, ok := UnwrapObject(llm[key])
	if !ok {
		return map[string]interface{}{}
	}
	return s
}

// vendor returns the vendor row of the extraction, or nil when the vendor
// section is absent or empty.
func vendor(llm map[string]interface{}) *domain.Vendor {
	v, ok := UnwrapObject(llm["vendor"])
	if !ok || len(v) == 0 {
		return nil
	}

	name := domain.UnknownVendorName
	if n := ParseText(v["vendorName"]); n != nil && strings.TrimSpace(*n) != "" {
		name = *n
	}
	return &domain.Vendor{
		Name:        name,
		Address:     ParseText(v["vendorAddress"]),
		TaxID:       ParseText(v["vendorTaxId"]),
		PartyNumber: ParseText(v["vendorPartyNumber"]),
	}
}

// customer returns the customer row of the extraction, or nil unless a
// non-blank customer name was extracted.
func customer(llm map[string]interface{}) *domain.Customer {
	c := section(llm, "customer")
	name := ParseText(c["customerName"])
	if name == nil || strings.TrimSpace(*name) == "" {
		return nil
	}
	return &domain.Customer{
		Name:    *name,
		Address: ParseText(c["customerAddress"]),
		TaxID:   ParseText(c["customerTaxId"]),
	}
}

// invoice maps the invoice and summary sections. Foreign keys are filled in
// by the caller.
func invoice(documentID string, llm map[string]interface{}) *domain.Invoice {
	inv := section(llm, "invoice")
	summary := section(llm, "summary")

	return &domain.Invoice{
		DocumentID:     documentID,
		InvoiceID:      ParseText(inv["invoiceId"]),
		InvoiceDate:    ParseDate(inv["invoiceDate"]),
		DeliveryDate:   ParseDate(inv["deliveryDate"]),
		DocumentType:   ParseText(summary["documentType"]),
		CurrencySymbol: ParseText(summary["currencySymbol"]),
		SubTotal:       ParseDecimal(summary["subTotal"]),
		TotalTax:       ParseDecimal(summary["totalTax"]),
		InvoiceTotal:   ParseDecimal(summary["invoiceTotal"]),
	}
}

// lineItems maps lineItems.items. Entries that are not objects are skipped.
func lineItems(invoiceID int64, llm map[string]interface{}) []*domain.LineItem {
	items, ok := UnwrapArray(section(llm, "lineItems")["items"])
	if !ok {
		return nil
	}

	out := make([]*domain.LineItem, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, &domain.LineItem{
			InvoiceID:    invoiceID,
			SrNo:         ParseInt(item["srNo"]),
			Description:  ParseText(item["description"]),
			Quantity:     ParseDecimal(item["quantity"]),
			UnitPrice:    ParseDecimal(item["unitPrice"]),
			TotalPrice:   ParseDecimal(item["totalPrice"]),
			Sachkonto:    ParseText(item["Sachkonto"]),
			BUSchluessel: ParseText(item["BUSchluessel"]),
			VATRate:      ParseDecimal(item["vatRate"]),
			VATAmount:    ParseDecimal(item["vatAmount"]),
		})
	}
	return out
}
