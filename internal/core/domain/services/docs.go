// Package services holds domain logic that spans several aggregates.
//
// FiscalDocumentBuilder turns a trip, the issuing team's fiscal profile and the
// client's billing data into the document submitted to the fiscal service.
package services
