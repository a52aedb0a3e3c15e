package domain

import (
	"strings"
)

// CountryBox is a named selection rectangle for a country.
type CountryBox struct {
	Name string
	Box  BoundingBox
}

func box(west, south, east, north float64) BoundingBox {
	return BoundingBox{West: west, South: south, East: east, North: north}
}

// countryBoxes maps ISO 3166-1 alpha-2 codes to coarse selection
// rectangles. The boxes bound queries, they are not borders.
var countryBoxes = map[string]CountryBox{
	"AF": {"Afghanistan", box(60.5, 29.4, 74.9, 38.5)},
	"AL": {"Albania", box(19.3, 39.6, 21.1, 42.7)},
	"AO": {"Angola", box(11.6, -18.0, 24.1, -4.4)},
	"AR": {"Argentina", box(-73.6, -55.1, -53.6, -21.8)},
	"AT": {"Austria", box(9.5, 46.4, 17.2, 49.0)},
	"AU": {"Australia", box(113.2, -43.7, 153.6, -10.7)},
	"BA": {"Bosnia and Herzegovina", box(15.7, 42.6, 19.6, 45.3)},
	"BD": {"Bangladesh", box(88.0, 20.7, 92.7, 26.6)},
	"BE": {"Belgium", box(2.5, 49.5, 6.4, 51.5)},
	"BG": {"Bulgaria", box(22.4, 41.2, 28.6, 44.2)},
	"BO": {"Bolivia", box(-69.6, -22.9, -57.5, -9.7)},
	"BR": {"Brazil", box(-74.0, -33.8, -34.8, 5.3)},
	"BY": {"Belarus", box(23.2, 51.3, 32.8, 56.2)},
	"CA": {"Canada", box(-141.0, 41.7, -52.6, 83.1)},
	"CD": {"Democratic Republic of the Congo", box(12.2, -13.5, 31.3, 5.4)},
	"CH": {"Switzerland", box(5.9, 45.8, 10.5, 47.8)},
	"CI": {"Ivory Coast", box(-8.6, 4.3, -2.5, 10.7)},
	"CL": {"Chile", box(-75.7, -55.9, -66.4, -17.5)},
	"CM": {"Cameroon", box(8.5, 1.7, 16.2, 13.1)},
	"CN": {"China", box(73.6, 18.2, 135.0, 53.6)},
	"CO": {"Colombia", box(-79.0, -4.2, -66.9, 12.5)},
	"CY": {"Cyprus", box(32.3, 34.6, 34.6, 35.7)},
	"CZ": {"Czechia", box(12.1, 48.6, 18.9, 51.1)},
	"DE": {"Germany", box(5.9, 47.3, 15.0, 55.1)},
	"DK": {"Denmark", box(8.1, 54.6, 12.7, 57.8)},
	"DZ": {"Algeria", box(-8.7, 19.0, 12.0, 37.1)},
	"EC": {"Ecuador", box(-81.0, -5.0, -75.2, 1.4)},
	"EE": {"Estonia", box(23.3, 57.5, 28.2, 59.7)},
	"EG": {"Egypt", box(25.0, 22.0, 35.8, 31.7)},
	"ES": {"Spain", box(-9.4, 35.9, 3.4, 43.8)},
	"ET": {"Ethiopia", box(32.9, 3.4, 48.0, 14.9)},
	"FI": {"Finland", box(20.6, 59.8, 31.6, 70.1)},
	"FR": {"France", box(-5.1, 42.3, 8.2, 51.1)},
	"GB": {"United Kingdom", box(-8.2, 49.9, 1.8, 60.9)},
	"GH": {"Ghana", box(-3.3, 4.7, 1.2, 11.2)},
	"GR": {"Greece", box(19.4, 34.8, 28.2, 41.7)},
	"HR": {"Croatia", box(13.5, 42.4, 19.4, 46.6)},
	"HU": {"Hungary", box(16.1, 45.7, 22.9, 48.6)},
	"ID": {"Indonesia", box(95.0, -11.0, 141.0, 6.1)},
	"IE": {"Ireland", box(-10.5, 51.4, -6.0, 55.4)},
	"IL": {"Israel", box(34.3, 29.5, 35.9, 33.3)},
	"IN": {"India", box(68.2, 6.8, 97.4, 35.5)},
	"IQ": {"Iraq", box(38.8, 29.1, 48.6, 37.4)},
	"IR": {"Iran", box(44.0, 25.1, 63.3, 39.8)},
	"IS": {"Iceland", box(-24.6, 63.3, -13.5, 66.6)},
	"IT": {"Italy", box(6.6, 36.6, 18.5, 47.1)},
	"JO": {"Jordan", box(35.0, 29.2, 39.3, 33.4)},
	"JP": {"Japan", box(129.4, 31.0, 145.8, 45.6)},
	"KE": {"Kenya", box(33.9, -4.7, 41.9, 5.5)},
	"KP": {"North Korea", box(124.3, 37.7, 130.7, 43.0)},
	"KR": {"South Korea", box(126.1, 33.1, 129.6, 38.6)},
	"KZ": {"Kazakhstan", box(46.5, 40.6, 87.4, 55.4)},
	"LB": {"Lebanon", box(35.1, 33.1, 36.6, 34.7)},
	"LK": {"Sri Lanka", box(79.7, 5.9, 81.9, 9.8)},
	"LT": {"Lithuania", box(21.0, 53.9, 26.8, 56.4)},
	"LU": {"Luxembourg", box(5.7, 49.4, 6.5, 50.2)},
	"LV": {"Latvia", box(21.0, 55.7, 28.2, 58.1)},
	"LY": {"Libya", box(9.3, 19.5, 25.2, 33.2)},
	"MA": {"Morocco", box(-13.2, 27.7, -1.0, 35.9)},
	"MD": {"Moldova", box(26.6, 45.5, 30.2, 48.5)},
	"MG": {"Madagascar", box(43.2, -25.6, 50.5, -12.0)},
	"MK": {"North Macedonia", box(20.5, 40.8, 23.0, 42.4)},
	"MN": {"Mongolia", box(87.8, 41.6, 119.9, 52.2)},
	"MT": {"Malta", box(14.2, 35.8, 14.6, 36.1)},
	"MX": {"Mexico", box(-117.1, 14.5, -86.7, 32.7)},
	"MY": {"Malaysia", box(99.6, 0.9, 119.3, 7.4)},
	"MZ": {"Mozambique", box(30.2, -26.9, 40.8, -10.5)},
	"NG": {"Nigeria", box(2.7, 4.2, 14.7, 13.9)},
	"NL": {"Netherlands", box(3.3, 50.8, 7.2, 53.6)},
	"NO": {"Norway", box(4.5, 57.9, 31.1, 71.2)},
	"NP": {"Nepal", box(80.1, 26.4, 88.2, 30.4)},
	"NZ": {"New Zealand", box(166.4, -47.3, 178.6, -34.4)},
	"PE": {"Peru", box(-81.3, -18.4, -68.7, 0.0)},
	"PH": {"Philippines", box(117.2, 5.0, 126.6, 18.7)},
	"PK": {"Pakistan", box(60.9, 23.7, 77.8, 37.1)},
	"PL": {"Poland", box(14.1, 49.0, 24.2, 54.9)},
	"PT": {"Portugal", box(-9.5, 36.9, -6.2, 42.2)},
	"PY": {"Paraguay", box(-62.6, -27.6, -54.3, -19.3)},
	"RO": {"Romania", box(20.2, 43.6, 29.7, 48.3)},
	"RS": {"Serbia", box(18.8, 42.2, 23.0, 46.2)},
	"RU": {"Russia", box(19.6, 41.2, 180.0, 81.9)},
	"SA": {"Saudi Arabia", box(34.6, 16.3, 55.7, 32.2)},
	"SD": {"Sudan", box(21.8, 8.7, 38.6, 22.2)},
	"SE": {"Sweden", box(11.0, 55.3, 24.2, 69.1)},
	"SI": {"Slovenia", box(13.4, 45.4, 16.6, 46.9)},
	"SK": {"Slovakia", box(16.8, 47.7, 22.6, 49.6)},
	"SN": {"Senegal", box(-17.6, 12.3, -11.4, 16.7)},
	"SY": {"Syria", box(35.7, 32.3, 42.4, 37.3)},
	"TH": {"Thailand", box(97.3, 5.6, 105.6, 20.5)},
	"TN": {"Tunisia", box(7.5, 30.2, 11.6, 37.5)},
	"TR": {"Turkey", box(26.0, 36.0, 44.8, 42.1)},
	"TZ": {"Tanzania", box(29.3, -11.8, 40.4, -0.9)},
	"UA": {"Ukraine", box(22.1, 44.4, 40.2, 52.4)},
	"US": {"United States", box(-125.0, 24.4, -66.9, 49.4)},
	"UY": {"Uruguay", box(-58.4, -35.0, -53.1, -30.1)},
	"UZ": {"Uzbekistan", box(56.0, 37.2, 73.1, 45.6)},
	"VE": {"Venezuela", box(-73.4, 0.6, -59.8, 12.2)},
	"VN": {"Vietnam", box(102.1, 8.6, 109.5, 23.4)},
	"ZA": {"South Africa", box(16.4, -34.8, 32.9, -22.1)},
}

// CountryBoxByCode looks up the selection rectangle for an ISO 3166-1
// alpha-2 country code. The lookup is case-insensitive.
func CountryBoxByCode(code string) (CountryBox, bool) {
	cb, ok := countryBoxes[strings.ToUpper(strings.TrimSpace(code))]
	return cb, ok
}

// CountryCodes returns the known country codes, unordered.
func CountryCodes() []string {
	codes := make([]string, 0, len(countryBoxes))
	for code := range countryBoxes {
		codes = append(codes, code)
	}
	return codes
}
