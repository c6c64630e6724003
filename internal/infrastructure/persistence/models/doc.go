// Package models contains the GORM persistence models behind the repositories.
// Domain types carry no ORM tags; each model converts with ToDomain and
// FromDomain. Child tables (agreement items, order lines, item suppliers,
// brand defaults, proforma lines) are saved through their aggregate.
package models
