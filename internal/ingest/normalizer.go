// Package ingest loads an exported document array and normalizes it into
// the relational schema.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"findash/internal/domain"
	"findash/internal/port"
)

// SkippedDocument describes a record that could not be ingested.
type SkippedDocument struct {
	Index      int    `json:"index"`
	DocumentID string `json:"document_id,omitempty"`
	Reason     string `json:"reason"`
}

// Report summarizes one normalizer run.
type Report struct {
	Total     int               `json:"total"`
	Processed int               `json:"processed"`
	Skipped   []SkippedDocument `json:"skipped"`
}

// Normalizer writes every record of a source into the database inside a
// single transaction.
type Normalizer struct {
	reader *Reader
	store  port.IngestStore
	log    *zap.Logger
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(reader *Reader, store port.IngestStore, log *zap.Logger) *Normalizer {
	return &Normalizer{reader: reader, store: store, log: log}
}

// Run ingests source. A record that fails is logged, listed in the report and
// skipped; statements it already executed stay in the transaction. Read,
// decode, begin and commit failures return an error with nothing committed.
func (n *Normalizer) Run(ctx context.Context, source string) (*Report, error) {
	records, err := n.reader.Records(ctx, source)
	if err != nil {
		return nil, err
	}

	tx, err := n.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	report := &Report{Total: len(records), Skipped: []SkippedDocument{}}
	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docID, err := n.ingestRecord(ctx, tx, raw)
		if err != nil {
			n.log.Warn("skipping document",
				zap.Int("index", i),
				zap.String("document_id", docID),
				zap.Error(err),
			)
			report.Skipped = append(report.Skipped, SkippedDocument{Index: i, DocumentID: docID, Reason: err.Error()})
			continue
		}
		report.Processed++
		n.log.Debug("processed document", zap.String("document_id", docID))
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	n.log.Info("ingestion complete",
		zap.String("source", source),
		zap.Int("total", report.Total),
		zap.Int("processed", report.Processed),
		zap.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

// ingestRecord writes one record and returns its document id, which may be
// empty when the record has none.
func (n *Normalizer) ingestRecord(ctx context.Context, tx port.IngestTx, raw interface{}) (string, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return "", domain.ErrInvalidRecord
	}
	rec := record(m)

	var docID string
	if id := plainText(rec["_id"]); id != nil {
		docID = *id
	}

	doc, err := rec.document()
	if err != nil {
		return docID, err
	}

	if err := ensureDimensions(ctx, tx, doc); err != nil {
		return docID, err
	}
	if err := tx.InsertDocument(ctx, doc); err != nil {
		return docID, err
	}

	llm := rec.llmData()
	inv := invoice(doc.ID, llm)

	if v := vendor(llm); v != nil {
		id, err := tx.CreateVendor(ctx, v)
		if err != nil {
			return docID, err
		}
		inv.VendorID = &id
	}
	if c := customer(llm); c != nil {
		id, err := tx.CreateCustomer(ctx, c)
		if err != nil {
			return docID, err
		}
		inv.CustomerID = &id
	}

	invoiceID, err := tx.CreateInvoice(ctx, inv)
	if err != nil {
		return docID, err
	}

	for _, item := range lineItems(invoiceID, llm) {
		if _, err := tx.CreateLineItem(ctx, item); err != nil {
			return docID, fmt.Errorf("line item: %w", err)
		}
	}
	return docID, nil
}

// ensureDimensions creates the placeholder organization, department and user
// rows a document refers to. A department is only created together with its
// organization.
func ensureDimensions(ctx context.Context, tx port.IngestTx, doc *domain.Document) error {
	if doc.OrganizationID != nil {
		org := &domain.Organization{ID: *doc.OrganizationID, Name: domain.OrganizationPrefix + *doc.OrganizationID}
		if err := tx.EnsureOrganization(ctx, org); err != nil {
			return err
		}
	}
	if doc.DepartmentID != nil && doc.OrganizationID != nil {
		dept := &domain.Department{
			ID:             *doc.DepartmentID,
			OrganizationID: *doc.OrganizationID,
			Name:           domain.DepartmentPrefix + *doc.DepartmentID,
		}
		if err := tx.EnsureDepartment(ctx, dept); err != nil {
			return err
		}
	}
	if doc.UploadedByID != nil {
		user := &domain.User{ID: *doc.UploadedByID, Name: domain.UserPrefix + *doc.UploadedByID}
		if err := tx.EnsureUser(ctx, user); err != nil {
			return err
		}
	}
	return nil
}
