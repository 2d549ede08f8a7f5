package facility

// metroFacilities maps 3-digit ZIP prefixes to their local service center.
var metroFacilities = map[string]Facility{
	// North Carolina (Raleigh-Durham area)
	"275": {Name: "Raleigh-Durham Service Center", City: "Raleigh", State: "NC", Phone: "(919) 555-7228"},
	"276": {Name: "Raleigh-Durham Service Center", City: "Raleigh", State: "NC", Phone: "(919) 555-7228"},
	"277": {Name: "Raleigh-Durham Service Center", City: "Raleigh", State: "NC", Phone: "(919) 555-7228"},
	"278": {Name: "Charlotte Distribution Hub", City: "Charlotte", State: "NC", Phone: "(704) 555-7228"},
	"279": {Name: "Charlotte Distribution Hub", City: "Charlotte", State: "NC", Phone: "(704) 555-7228"},
	"280": {Name: "Charlotte Distribution Hub", City: "Charlotte", State: "NC", Phone: "(704) 555-7228"},
	"281": {Name: "Charlotte Distribution Hub", City: "Charlotte", State: "NC", Phone: "(704) 555-7228"},

	// Georgia
	"300": {Name: "Atlanta Metro Center", City: "Atlanta", State: "GA", Phone: "(404) 555-7228"},
	"303": {Name: "Atlanta Metro Center", City: "Atlanta", State: "GA", Phone: "(404) 555-7228"},
	"305": {Name: "Atlanta Metro Center", City: "Atlanta", State: "GA", Phone: "(404) 555-7228"},

	// Florida
	"320": {Name: "Jacksonville Service Center", City: "Jacksonville", State: "FL", Phone: "(904) 555-7228"},
	"321": {Name: "Orlando Distribution Hub", City: "Orlando", State: "FL", Phone: "(407) 555-7228"},
	"327": {Name: "Orlando Distribution Hub", City: "Orlando", State: "FL", Phone: "(407) 555-7228"},
	"331": {Name: "Miami-Dade Service Center", City: "Miami", State: "FL", Phone: "(305) 555-7228"},
	"332": {Name: "Miami-Dade Service Center", City: "Miami", State: "FL", Phone: "(305) 555-7228"},
	"333": {Name: "Miami-Dade Service Center", City: "Miami", State: "FL", Phone: "(305) 555-7228"},
	"336": {Name: "Tampa Bay Distribution Hub", City: "Tampa", State: "FL", Phone: "(813) 555-7228"},

	// Texas
	"750": {Name: "Dallas-Fort Worth Hub", City: "Dallas", State: "TX", Phone: "(214) 555-7228"},
	"751": {Name: "Dallas-Fort Worth Hub", City: "Dallas", State: "TX", Phone: "(214) 555-7228"},
	"752": {Name: "Dallas-Fort Worth Hub", City: "Dallas", State: "TX", Phone: "(214) 555-7228"},
	"770": {Name: "Houston Metro Center", City: "Houston", State: "TX", Phone: "(713) 555-7228"},
	"773": {Name: "Houston Metro Center", City: "Houston", State: "TX", Phone: "(713) 555-7228"},
	"782": {Name: "San Antonio Service Center", City: "San Antonio", State: "TX", Phone: "(210) 555-7228"},
	"787": {Name: "Austin Distribution Hub", City: "Austin", State: "TX", Phone: "(512) 555-7228"},

	// California
	"900": {Name: "Los Angeles Metro Hub", City: "Los Angeles", State: "CA", Phone: "(213) 555-7228"},
	"902": {Name: "Los Angeles Metro Hub", City: "Los Angeles", State: "CA", Phone: "(213) 555-7228"},
	"906": {Name: "Los Angeles Metro Hub", City: "Los Angeles", State: "CA", Phone: "(213) 555-7228"},
	"921": {Name: "San Diego Service Center", City: "San Diego", State: "CA", Phone: "(619) 555-7228"},
	"941": {Name: "San Francisco Bay Hub", City: "San Francisco", State: "CA", Phone: "(415) 555-7228"},
	"945": {Name: "San Francisco Bay Hub", City: "Oakland", State: "CA", Phone: "(510) 555-7228"},
	"951": {Name: "Inland Empire Center", City: "Riverside", State: "CA", Phone: "(951) 555-7228"},

	// New York/New Jersey
	"100": {Name: "New York Metro Hub", City: "New York", State: "NY", Phone: "(212) 555-7228"},
	"101": {Name: "New York Metro Hub", City: "New York", State: "NY", Phone: "(212) 555-7228"},
	"070": {Name: "Northern New Jersey Center", City: "Newark", State: "NJ", Phone: "(973) 555-7228"},
	"071": {Name: "Northern New Jersey Center", City: "Newark", State: "NJ", Phone: "(973) 555-7228"},

	// Pennsylvania
	"190": {Name: "Philadelphia Service Center", City: "Philadelphia", State: "PA", Phone: "(215) 555-7228"},
	"191": {Name: "Philadelphia Service Center", City: "Philadelphia", State: "PA", Phone: "(215) 555-7228"},
	"152": {Name: "Pittsburgh Distribution Hub", City: "Pittsburgh", State: "PA", Phone: "(412) 555-7228"},

	// Massachusetts
	"021": {Name: "Boston Metro Center", City: "Boston", State: "MA", Phone: "(617) 555-7228"},
	"022": {Name: "Boston Metro Center", City: "Boston", State: "MA", Phone: "(617) 555-7228"},

	// Illinois
	"606": {Name: "Chicago Metro Hub", City: "Chicago", State: "IL", Phone: "(312) 555-7228"},
	"607": {Name: "Chicago Metro Hub", City: "Chicago", State: "IL", Phone: "(312) 555-7228"},
	"600": {Name: "Chicago Metro Hub", City: "Chicago", State: "IL", Phone: "(312) 555-7228"},

	// Virginia/DC
	"220": {Name: "Northern Virginia Center", City: "Alexandria", State: "VA", Phone: "(703) 555-7228"},
	"221": {Name: "Northern Virginia Center", City: "Alexandria", State: "VA", Phone: "(703) 555-7228"},
	"200": {Name: "Washington DC Hub", City: "Washington", State: "DC", Phone: "(202) 555-7228"},

	// Colorado
	"802": {Name: "Denver Metro Center", City: "Denver", State: "CO", Phone: "(303) 555-7228"},
	"803": {Name: "Denver Metro Center", City: "Denver", State: "CO", Phone: "(303) 555-7228"},

	// Arizona
	"850": {Name: "Phoenix Service Center", City: "Phoenix", State: "AZ", Phone: "(602) 555-7228"},
	"852": {Name: "Phoenix Service Center", City: "Phoenix", State: "AZ", Phone: "(602) 555-7228"},

	// Washington
	"980": {Name: "Seattle Metro Hub", City: "Seattle", State: "WA", Phone: "(206) 555-7228"},
	"981": {Name: "Seattle Metro Hub", City: "Seattle", State: "WA", Phone: "(206) 555-7228"},

	// Michigan
	"481": {Name: "Detroit Service Center", City: "Detroit", State: "MI", Phone: "(313) 555-7228"},
	"482": {Name: "Detroit Service Center", City: "Detroit", State: "MI", Phone: "(313) 555-7228"},
}

// regionalFacilities maps the leading ZIP digit to a regional hub.
var regionalFacilities = map[string]Facility{
	"0": {Name: "Northeast Regional Hub", City: "Newark", State: "NJ", Phone: "(973) 555-7228"},
	"1": {Name: "Northeast Regional Hub", City: "Newark", State: "NJ", Phone: "(973) 555-7228"},
	"2": {Name: "Southeast Regional Hub", City: "Charlotte", State: "NC", Phone: "(704) 555-7228"},
	"3": {Name: "Southeast Regional Hub", City: "Atlanta", State: "GA", Phone: "(404) 555-7228"},
	"4": {Name: "Great Lakes Regional Hub", City: "Detroit", State: "MI", Phone: "(313) 555-7228"},
	"5": {Name: "Central Regional Hub", City: "Dallas", State: "TX", Phone: "(214) 555-7228"},
	"6": {Name: "Midwest Regional Hub", City: "Chicago", State: "IL", Phone: "(312) 555-7228"},
	"7": {Name: "South Central Regional Hub", City: "Houston", State: "TX", Phone: "(713) 555-7228"},
	"8": {Name: "Mountain West Regional Hub", City: "Denver", State: "CO", Phone: "(303) 555-7228"},
	"9": {Name: "Pacific Regional Hub", City: "Los Angeles", State: "CA", Phone: "(213) 555-7228"},
}
