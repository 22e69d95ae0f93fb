package units

// prefix is an SI multiplier that may precede a prefixable unit name.
type prefix struct {
	symbol string
	name   string
	factor float64
}

// siPrefixes lists the SI prefixes. Lookup tries longer spellings first, so
// "da" wins over "d".
var siPrefixes = []prefix{
	{"Y", "yotta", 1e24},
	{"Z", "zetta", 1e21},
	{"E", "exa", 1e18},
	{"P", "peta", 1e15},
	{"T", "tera", 1e12},
	{"G", "giga", 1e9},
	{"M", "mega", 1e6},
	{"k", "kilo", 1e3},
	{"h", "hecto", 1e2},
	{"da", "deca", 1e1},
	{"d", "deci", 1e-1},
	{"c", "centi", 1e-2},
	{"m", "milli", 1e-3},
	{"µ", "micro", 1e-6},
	{"μ", "micro", 1e-6},
	{"u", "micro", 1e-6},
	{"n", "nano", 1e-9},
	{"p", "pico", 1e-12},
	{"f", "femto", 1e-15},
	{"a", "atto", 1e-18},
}

// baseUnit declares a unit directly by scale and signature.
type baseUnit struct {
	unit       Unit
	aliases    []string
	prefixable bool
}

var builtinBase = []baseUnit{
	{Unit{Symbol: "m", Scale: 1, Dim: Base(Length)}, []string{"meter", "meters", "metre", "metres"}, true},
	{Unit{Symbol: "g", Scale: 1e-3, Dim: Base(Mass)}, []string{"gram", "grams"}, true},
	{Unit{Symbol: "kg", Scale: 1, Dim: Base(Mass)}, nil, false},
	{Unit{Symbol: "s", Scale: 1, Dim: Base(Time)}, []string{"second", "seconds", "sec"}, true},
	{Unit{Symbol: "K", Scale: 1, Dim: Base(Temperature)}, []string{"kelvin"}, true},
	{Unit{Symbol: "A", Scale: 1, Dim: Base(Current)}, []string{"ampere", "amperes", "amp", "amps"}, true},
	{Unit{Symbol: "mol", Scale: 1, Dim: Base(Amount)}, []string{"mole", "moles"}, true},
	{Unit{Symbol: "cd", Scale: 1, Dim: Base(Luminosity)}, []string{"candela"}, true},
	{Unit{Symbol: "rad", Scale: 1}, []string{"radian", "radians"}, true},
	{Unit{Symbol: "degC", Scale: 1, Offset: 273.15, Dim: Base(Temperature)}, []string{"°C", "celsius", "degree_Celsius"}, false},
	{Unit{Symbol: "degF", Scale: 5.0 / 9.0, Offset: 459.67, Dim: Base(Temperature)}, []string{"°F", "fahrenheit", "degree_Fahrenheit"}, false},
}

// builtinDerived is defined in order; each entry may refer to any unit
// declared before it.
var builtinDerived = []Definition{
	{Name: "dimensionless", Definition: "1"},
	{Name: "percent", Definition: "0.01", Aliases: []string{"%"}},
	{Name: "min", Definition: "60 s", Aliases: []string{"minute", "minutes"}},
	{Name: "h", Definition: "60 min", Aliases: []string{"hr", "hour", "hours"}},
	{Name: "day", Definition: "24 h", Aliases: []string{"days"}},
	{Name: "Hz", Definition: "1/s", Aliases: []string{"hertz"}, Prefixable: true},
	{Name: "N", Definition: "kg*m/s**2", Aliases: []string{"newton", "newtons"}, Prefixable: true},
	{Name: "J", Definition: "N*m", Aliases: []string{"joule", "joules"}, Prefixable: true},
	{Name: "W", Definition: "J/s", Aliases: []string{"watt", "watts"}, Prefixable: true},
	{Name: "Pa", Definition: "N/m**2", Aliases: []string{"pascal", "pascals"}, Prefixable: true},
	{Name: "C", Definition: "A*s", Aliases: []string{"coulomb", "coulombs"}, Prefixable: true},
	{Name: "V", Definition: "W/A", Aliases: []string{"volt", "volts"}, Prefixable: true},
	{Name: "ohm", Definition: "V/A", Aliases: []string{"Ω", "ohms"}, Prefixable: true},
	{Name: "Wh", Definition: "W*h", Aliases: []string{"watt_hour"}, Prefixable: true},
	{Name: "Ah", Definition: "A*h", Aliases: []string{"amp_hour"}, Prefixable: true},
	{Name: "L", Definition: "1e-3 m**3", Aliases: []string{"l", "liter", "liters", "litre", "litres"}, Prefixable: true},
	{Name: "bar", Definition: "1e5 Pa", Prefixable: true},
	{Name: "atm", Definition: "101325 Pa", Aliases: []string{"atmosphere"}},
	{Name: "lb", Definition: "0.45359237 kg", Aliases: []string{"lbm", "pound", "pounds"}},
	{Name: "oz", Definition: "lb/16", Aliases: []string{"ounce", "ounces"}},
	{Name: "t", Definition: "1000 kg", Aliases: []string{"tonne", "tonnes", "metric_ton"}},
	{Name: "ft", Definition: "0.3048 m", Aliases: []string{"foot", "feet"}},
	{Name: "in", Definition: "0.0254 m", Aliases: []string{"inch", "inches"}},
	{Name: "yd", Definition: "0.9144 m", Aliases: []string{"yard", "yards"}},
	{Name: "mi", Definition: "1609.344 m", Aliases: []string{"mile", "miles"}},
	{Name: "nmi", Definition: "1852 m", Aliases: []string{"nautical_mile", "nautical_miles"}},
	{Name: "kt", Definition: "nmi/h", Aliases: []string{"kn", "knot", "knots"}},
	{Name: "mph", Definition: "mi/h"},
	{Name: "kph", Definition: "km/h"},
	{Name: "lbf", Definition: "lb * 9.80665 m/s**2", Aliases: []string{"pound_force"}},
	{Name: "kgf", Definition: "kg * 9.80665 m/s**2", Aliases: []string{"kilogram_force"}},
	{Name: "slug", Definition: "lbf*s**2/ft", Aliases: []string{"slugs"}},
	{Name: "psi", Definition: "lbf/in**2"},
	{Name: "inHg", Definition: "3386.389 Pa"},
	{Name: "hp", Definition: "550 ft*lbf/s", Aliases: []string{"horsepower"}},
	{Name: "cal", Definition: "4.184 J", Aliases: []string{"calorie", "calories"}, Prefixable: true},
	{Name: "BTU", Definition: "1055.05585262 J", Aliases: []string{"Btu", "btu"}},
	{Name: "eV", Definition: "1.602176634e-19 J", Aliases: []string{"electron_volt"}, Prefixable: true},
	{Name: "deg", Definition: "0.017453292519943295 rad", Aliases: []string{"°", "degree", "degrees"}},
	{Name: "rev", Definition: "6.283185307179586 rad", Aliases: []string{"revolution", "revolutions", "turn", "turns"}},
	{Name: "rpm", Definition: "rev/min"},
	{Name: "gal", Definition: "3.785411784 L", Aliases: []string{"gallon", "gallons"}},
	{Name: "ha", Definition: "1e4 m**2", Aliases: []string{"hectare", "hectares"}},
	{Name: "degR", Definition: "5/9 K", Aliases: []string{"°R", "rankine"}},
}
