// Package domain contains shared domain types used across the registration
// sub-packages. Registry data carriers and aggregation live in
// domain/catalog; descriptor construction lives in domain/registration.
// This root package holds sentinel errors, the configuration error type, and
// the normalized health status shared by both.
package domain
