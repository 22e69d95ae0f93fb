// Package types defines the Sheet interface, the Entry type it stores, and
// the standard errors for the parameter sheet.
//
// A sheet is a named collection of quantities (design parameters such as
// "max_takeoff_mass = 79000 kg") persisted by a backend. Entries carry their
// dimension kind, so a typed read with EntryQuantity fails when the caller
// asks for the wrong dimension.
package types
