package registry

// builtin is the table shipped with tzline, ordered west to east.
// Offsets are standard time; daylight saving is not modeled.
var builtin = []Descriptor{
	{ID: "Pacific/Honolulu", Name: "Hawaii-Aleutian Time", City: "Honolulu", Abbreviation: "HST", Offset: -10},
	{ID: "America/Anchorage", Name: "Alaska Time", City: "Anchorage", Abbreviation: "AKST", Offset: -9},
	{ID: "America/Los_Angeles", Name: "Pacific Time", City: "Los Angeles", Abbreviation: "PST", Offset: -8},
	{ID: "America/Vancouver", Name: "Pacific Time", City: "Vancouver", Abbreviation: "PST", Offset: -8},
	{ID: "America/Denver", Name: "Mountain Time", City: "Denver", Abbreviation: "MST", Offset: -7},
	{ID: "America/Phoenix", Name: "Mountain Time", City: "Phoenix", Abbreviation: "MST", Offset: -7},
	{ID: "America/Chicago", Name: "Central Time", City: "Chicago", Abbreviation: "CST", Offset: -6},
	{ID: "America/Mexico_City", Name: "Central Time", City: "Mexico City", Abbreviation: "CST", Offset: -6},
	{ID: "America/New_York", Name: "Eastern Time", City: "New York", Abbreviation: "EST", Offset: -5},
	{ID: "America/Toronto", Name: "Eastern Time", City: "Toronto", Abbreviation: "EST", Offset: -5},
	{ID: "America/Caracas", Name: "Venezuela Time", City: "Caracas", Abbreviation: "VET", Offset: -4},
	{ID: "America/St_Johns", Name: "Newfoundland Time", City: "St. John's", Abbreviation: "NST", Offset: -3.5},
	{ID: "America/Sao_Paulo", Name: "Brasilia Time", City: "São Paulo", Abbreviation: "BRT", Offset: -3},
	{ID: "America/Argentina/Buenos_Aires", Name: "Argentina Time", City: "Buenos Aires", Abbreviation: "ART", Offset: -3},
	{ID: "Atlantic/Azores", Name: "Azores Time", City: "Azores", Abbreviation: "AZOT", Offset: -1},
	{ID: "Europe/London", Name: "Greenwich Mean Time", City: "London", Abbreviation: "GMT", Offset: 0},
	{ID: "Africa/Lagos", Name: "West Africa Time", City: "Lagos", Abbreviation: "WAT", Offset: 1},
	{ID: "Europe/Paris", Name: "Central European Time", City: "Paris", Abbreviation: "CET", Offset: 1},
	{ID: "Europe/Berlin", Name: "Central European Time", City: "Berlin", Abbreviation: "CET", Offset: 1},
	{ID: "Africa/Cairo", Name: "Eastern European Time", City: "Cairo", Abbreviation: "EET", Offset: 2},
	{ID: "Europe/Athens", Name: "Eastern European Time", City: "Athens", Abbreviation: "EET", Offset: 2},
	{ID: "Europe/Moscow", Name: "Moscow Time", City: "Moscow", Abbreviation: "MSK", Offset: 3},
	{ID: "Africa/Nairobi", Name: "East Africa Time", City: "Nairobi", Abbreviation: "EAT", Offset: 3},
	{ID: "Asia/Tehran", Name: "Iran Time", City: "Tehran", Abbreviation: "IRST", Offset: 3.5},
	{ID: "Asia/Dubai", Name: "Gulf Time", City: "Dubai", Abbreviation: "GST", Offset: 4},
	{ID: "Asia/Kabul", Name: "Afghanistan Time", City: "Kabul", Abbreviation: "AFT", Offset: 4.5},
	{ID: "Asia/Karachi", Name: "Pakistan Time", City: "Karachi", Abbreviation: "PKT", Offset: 5},
	{ID: "Asia/Kolkata", Name: "India Time", City: "Mumbai", Abbreviation: "IST", Offset: 5.5},
	{ID: "Asia/Kathmandu", Name: "Nepal Time", City: "Kathmandu", Abbreviation: "NPT", Offset: 5.75},
	{ID: "Asia/Dhaka", Name: "Bangladesh Time", City: "Dhaka", Abbreviation: "BST", Offset: 6},
	{ID: "Asia/Yangon", Name: "Myanmar Time", City: "Yangon", Abbreviation: "MMT", Offset: 6.5},
	{ID: "Asia/Ho_Chi_Minh", Name: "Indochina Time", City: "Ho Chi Minh City", Abbreviation: "ICT", Offset: 7},
	{ID: "Asia/Bangkok", Name: "Indochina Time", City: "Bangkok", Abbreviation: "ICT", Offset: 7},
	{ID: "Asia/Singapore", Name: "Singapore Time", City: "Singapore", Abbreviation: "SGT", Offset: 8},
	{ID: "Asia/Shanghai", Name: "China Time", City: "Shanghai", Abbreviation: "CST", Offset: 8},
	{ID: "Australia/Perth", Name: "Australian Western Time", City: "Perth", Abbreviation: "AWST", Offset: 8},
	{ID: "Asia/Tokyo", Name: "Japan Time", City: "Tokyo", Abbreviation: "JST", Offset: 9},
	{ID: "Asia/Seoul", Name: "Korea Time", City: "Seoul", Abbreviation: "KST", Offset: 9},
	{ID: "Australia/Adelaide", Name: "Australian Central Time", City: "Adelaide", Abbreviation: "ACST", Offset: 9.5},
	{ID: "Australia/Sydney", Name: "Australian Eastern Time", City: "Sydney", Abbreviation: "AEST", Offset: 10},
	{ID: "Pacific/Noumea", Name: "New Caledonia Time", City: "Nouméa", Abbreviation: "NCT", Offset: 11},
	{ID: "Pacific/Auckland", Name: "New Zealand Daylight Time", City: "Auckland", Abbreviation: "NZDT", Offset: 13},
	{ID: "Pacific/Kiritimati", Name: "Line Islands Time", City: "Kiritimati", Abbreviation: "LINT", Offset: 14},
}
