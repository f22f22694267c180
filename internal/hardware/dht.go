package hardware

// dhtReading converts a DHT measurement, reported in tenths of a degree and
// tenths of a percent, to the values the monitor works with.
func dhtReading(deciCelsius int16, deciPercent uint16) (*float64, *float64) {
	temperature := float64(deciCelsius) / 10
	humidity := float64(deciPercent) / 10
	return &temperature, &humidity
}
