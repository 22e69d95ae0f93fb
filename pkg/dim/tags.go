package dim

// Dimension is implemented by the tag types below and by nothing else.
type Dimension interface {
	Kind() Kind
	dimension()
}

type (
	Mass            struct{}
	Length          struct{}
	Time            struct{}
	Temperature     struct{}
	Velocity        struct{}
	Force           struct{}
	Moment          struct{}
	Power           struct{}
	Energy          struct{}
	Area            struct{}
	Volume          struct{}
	Density         struct{}
	Pressure        struct{}
	AngularVelocity struct{}
	Voltage         struct{}
	Current         struct{}
	Capacity        struct{}
)

func (Mass) Kind() Kind            { return KindMass }
func (Length) Kind() Kind          { return KindLength }
func (Time) Kind() Kind            { return KindTime }
func (Temperature) Kind() Kind     { return KindTemperature }
func (Velocity) Kind() Kind        { return KindVelocity }
func (Force) Kind() Kind           { return KindForce }
func (Moment) Kind() Kind          { return KindMoment }
func (Power) Kind() Kind           { return KindPower }
func (Energy) Kind() Kind          { return KindEnergy }
func (Area) Kind() Kind            { return KindArea }
func (Volume) Kind() Kind          { return KindVolume }
func (Density) Kind() Kind         { return KindDensity }
func (Pressure) Kind() Kind        { return KindPressure }
func (AngularVelocity) Kind() Kind { return KindAngularVelocity }
func (Voltage) Kind() Kind         { return KindVoltage }
func (Current) Kind() Kind         { return KindCurrent }
func (Capacity) Kind() Kind        { return KindCapacity }

func (Mass) dimension()            {}
func (Length) dimension()          {}
func (Time) dimension()            {}
func (Temperature) dimension()     {}
func (Velocity) dimension()        {}
func (Force) dimension()           {}
func (Moment) dimension()          {}
func (Power) dimension()           {}
func (Energy) dimension()          {}
func (Area) dimension()            {}
func (Volume) dimension()          {}
func (Density) dimension()         {}
func (Pressure) dimension()        {}
func (AngularVelocity) dimension() {}
func (Voltage) dimension()         {}
func (Current) dimension()         {}
func (Capacity) dimension()        {}
