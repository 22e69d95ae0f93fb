package quantity

import "github.com/mesh-intelligence/quantities/pkg/dim"

// Quantity types, one per dimension.
type (
	Mass            = Quantity[dim.Mass]
	Length          = Quantity[dim.Length]
	Time            = Quantity[dim.Time]
	Temperature     = Quantity[dim.Temperature]
	Velocity        = Quantity[dim.Velocity]
	Force           = Quantity[dim.Force]
	Moment          = Quantity[dim.Moment]
	Power           = Quantity[dim.Power]
	Energy          = Quantity[dim.Energy]
	Area            = Quantity[dim.Area]
	Volume          = Quantity[dim.Volume]
	Density         = Quantity[dim.Density]
	Pressure        = Quantity[dim.Pressure]
	AngularVelocity = Quantity[dim.AngularVelocity]
	Voltage         = Quantity[dim.Voltage]
	Current         = Quantity[dim.Current]
	Capacity        = Quantity[dim.Capacity]
)

// NewMass returns a mass; the canonical unit is kg.
func NewMass(x float64, unit string) (Mass, error) { return New[dim.Mass](x, unit) }

// NewLength returns a length; the canonical unit is m.
func NewLength(x float64, unit string) (Length, error) { return New[dim.Length](x, unit) }

// NewTime returns a duration; the canonical unit is s.
func NewTime(x float64, unit string) (Time, error) { return New[dim.Time](x, unit) }

// NewTemperature returns an absolute temperature; the canonical unit is K.
// degC and degF are accepted but cannot take part in products.
func NewTemperature(x float64, unit string) (Temperature, error) {
	return New[dim.Temperature](x, unit)
}

// NewVelocity returns a velocity; the canonical unit is m/s.
func NewVelocity(x float64, unit string) (Velocity, error) { return New[dim.Velocity](x, unit) }

// NewForce returns a force; the canonical unit is N.
func NewForce(x float64, unit string) (Force, error) { return New[dim.Force](x, unit) }

// NewMoment returns a moment; the canonical unit is N·m.
func NewMoment(x float64, unit string) (Moment, error) { return New[dim.Moment](x, unit) }

// NewPower returns a power; the canonical unit is W.
func NewPower(x float64, unit string) (Power, error) { return New[dim.Power](x, unit) }

// NewEnergy returns an energy; the canonical unit is J.
func NewEnergy(x float64, unit string) (Energy, error) { return New[dim.Energy](x, unit) }

// NewArea returns an area; the canonical unit is m².
func NewArea(x float64, unit string) (Area, error) { return New[dim.Area](x, unit) }

// NewVolume returns a volume; the canonical unit is m³.
func NewVolume(x float64, unit string) (Volume, error) { return New[dim.Volume](x, unit) }

// NewDensity returns a density; the canonical unit is kg/m³.
func NewDensity(x float64, unit string) (Density, error) { return New[dim.Density](x, unit) }

// NewPressure returns a pressure; the canonical unit is Pa.
func NewPressure(x float64, unit string) (Pressure, error) { return New[dim.Pressure](x, unit) }

// NewAngularVelocity returns an angular velocity; the canonical unit is rad/s.
func NewAngularVelocity(x float64, unit string) (AngularVelocity, error) {
	return New[dim.AngularVelocity](x, unit)
}

// NewVoltage returns a voltage; the canonical unit is V.
func NewVoltage(x float64, unit string) (Voltage, error) { return New[dim.Voltage](x, unit) }

// NewCurrent returns a current; the canonical unit is A.
func NewCurrent(x float64, unit string) (Current, error) { return New[dim.Current](x, unit) }

// NewCapacity returns a charge capacity; the canonical unit is A·h.
func NewCapacity(x float64, unit string) (Capacity, error) { return New[dim.Capacity](x, unit) }
