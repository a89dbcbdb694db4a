package scoredomain

// nameOverrides maps normalized feed spellings that the cascade gets wrong to
// the roster spelling. An override only applies when its target is on the
// roster.
var nameOverrides = map[string]string{
	"jordan smith":    "Jordan L. Smith",
	"jordan l smith":  "Jordan L. Smith",
	"jordan l. smith": "Jordan L. Smith",
	"hao tong li":     "Hao-Tong Li",
	"haotong li":      "Hao-Tong Li",
	"hao-tong li":     "Hao-Tong Li",
}
