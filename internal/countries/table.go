package countries

// table is kept as literal data. Aliases are separate rows that repeat the
// calendar ID of the country they stand in for.
var table = []Entry{
	{Code: "JP", CalendarID: "ja.japanese.official#holiday@group.v.calendar.google.com", Locale: "ja"},
	{Code: "US", CalendarID: "en.usa.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "GB", CalendarID: "en.uk.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "UK", CalendarID: "en.uk.official#holiday@group.v.calendar.google.com", Locale: "en"}, // Alias of GB
	{Code: "KR", CalendarID: "en.south_korea.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "CA", CalendarID: "en.canadian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "AU", CalendarID: "en.australian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "NZ", CalendarID: "en.new_zealand.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "DE", CalendarID: "en.german.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "FR", CalendarID: "en.french.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "IT", CalendarID: "en.italian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "ES", CalendarID: "en.spain.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "BR", CalendarID: "en.brazilian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "MX", CalendarID: "en.mexican.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "IN", CalendarID: "en.indian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "CN", CalendarID: "en.china.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "HK", CalendarID: "en.hong_kong.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "SG", CalendarID: "en.singapore.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "MY", CalendarID: "en.malaysia.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "TH", CalendarID: "en.thai.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "VN", CalendarID: "en.vietnamese.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "PH", CalendarID: "en.philippines.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "ID", CalendarID: "en.indonesian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "TR", CalendarID: "en.turkish.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "SA", CalendarID: "en.sa.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "AE", CalendarID: "en.ae.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "IL", CalendarID: "en.jewish.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "ZA", CalendarID: "en.sa.official#holiday@group.v.calendar.google.com", Locale: "en"}, // Shares the en.sa calendar with SA
	{Code: "RU", CalendarID: "en.russian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "PL", CalendarID: "en.polish.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "NL", CalendarID: "en.dutch.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "BE", CalendarID: "en.be.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "AT", CalendarID: "en.austrian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "CH", CalendarID: "en.ch.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "SE", CalendarID: "en.swedish.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "NO", CalendarID: "en.norwegian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "DK", CalendarID: "en.danish.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "FI", CalendarID: "en.finnish.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "PT", CalendarID: "en.portuguese.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "GR", CalendarID: "en.greek.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "IE", CalendarID: "en.irish.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "CZ", CalendarID: "en.czech.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "HU", CalendarID: "en.hungarian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "RO", CalendarID: "en.romanian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "BG", CalendarID: "en.bulgarian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "HR", CalendarID: "en.croatian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "RS", CalendarID: "en.rs.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "SI", CalendarID: "en.slovenian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "SK", CalendarID: "en.slovak.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "LT", CalendarID: "en.lithuanian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "LV", CalendarID: "en.latvian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "EE", CalendarID: "en.ee.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "UA", CalendarID: "en.ukrainian.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "BY", CalendarID: "en.by.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "AR", CalendarID: "en.ar.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "CL", CalendarID: "en.cl.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "CO", CalendarID: "en.co.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "PE", CalendarID: "en.pe.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "VE", CalendarID: "en.ve.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "CR", CalendarID: "en.cr.official#holiday@group.v.calendar.google.com", Locale: "en"},

	// Additional countries
	{Code: "AO", CalendarID: "en.ao.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "AW", CalendarID: "en.aw.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "BD", CalendarID: "en.bd.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "BI", CalendarID: "en.bi.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "BW", CalendarID: "en.bw.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "CW", CalendarID: "en.cw.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "DJ", CalendarID: "en.dj.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "DO", CalendarID: "en.do.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "EG", CalendarID: "en.eg.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "GE", CalendarID: "en.ge.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "HN", CalendarID: "en.hn.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "IS", CalendarID: "en.is.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "JM", CalendarID: "en.jm.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "KE", CalendarID: "en.ke.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "LU", CalendarID: "en.lu.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "MA", CalendarID: "en.ma.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "MW", CalendarID: "en.mw.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "MZ", CalendarID: "en.mz.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "NG", CalendarID: "en.ng.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "NI", CalendarID: "en.ni.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "PY", CalendarID: "en.py.official#holiday@group.v.calendar.google.com", Locale: "en"},
	{Code: "YV", CalendarID: "en.ve.official#holiday@group.v.calendar.google.com", Locale: "en"}, // Alias of VE
}

// Hints maps the ad-hoc fetch tool's country hints to calendar IDs. Hints
// carry an optional locale suffix ("JP_ja", "KR_ko") because the same country
// is published in several languages.
var Hints = map[string]string{
	"JP_ja": "ja.japanese.official#holiday@group.v.calendar.google.com",
	"JP_en": "en.japanese.official#holiday@group.v.calendar.google.com",
	"US":    "en.usa.official#holiday@group.v.calendar.google.com",
	"GB":    "en.uk.official#holiday@group.v.calendar.google.com",
	"KR_en": "en.south_korea.official#holiday@group.v.calendar.google.com",
	"KR_ko": "ko.south_korea.official#holiday@group.v.calendar.google.com",
	"TW_en": "en.taiwan.official#holiday@group.v.calendar.google.com",
	"TW_zh": "zh.taiwan.official#holiday@group.v.calendar.google.com",
}
