// Package models defines the wire DTOs of the admissions backend and the
// client-side tables derived from them, such as the per-document-type
// upload policy.
package models
