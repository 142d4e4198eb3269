// Package ifsc validates Indian Financial System Codes and resolves the
// issuing bank from the code prefix.
//
// An IFSC is 11 characters: a 4 letter bank identifier, a reserved '0',
// and a 6 character alphanumeric branch code (XXXX0YYYYYY).
package ifsc

import (
	"fmt"
	"strings"
)

// bankNames maps the 4 letter bank identifier to the bank's display name.
var bankNames = map[string]string{
	// Public sector banks
	"SBIN": "STATE BANK OF INDIA",
	"ALLA": "ALLAHABAD BANK",
	"ANDB": "ANDHRA BANK",
	"BARB": "BANK OF BARODA",
	"BKID": "BANK OF INDIA",
	"MAHB": "BANK OF MAHARASHTRA",
	"CNRB": "CANARA BANK",
	"CBIN": "CENTRAL BANK OF INDIA",
	"CORP": "CORPORATION BANK",
	"BKDN": "DENA BANK",
	"IBKL": "IDBI BANK",
	"IDIB": "INDIAN BANK",
	"IOBA": "INDIAN OVERSEAS BANK",
	"ORBC": "ORIENTAL BANK OF COMMERCE",
	"PSIB": "PUNJAB & SIND BANK",
	"PUNB": "PUNJAB NATIONAL BANK",
	"SBBJ": "STATE BANK OF BIKANER & JAIPUR",
	"SBHY": "STATE BANK OF HYDERABAD",
	"SBMY": "STATE BANK OF MYSORE",
	"STBP": "STATE BANK OF PATIALA",
	"SBTR": "STATE BANK OF TRAVANCORE",
	"SYNB": "SYNDICATE BANK",
	"UCBA": "UCO BANK",
	"UBIN": "UNION BANK OF INDIA",
	"UTBI": "UNITED BANK OF INDIA",
	"VIJB": "VIJAYA BANK",
	"BMBL": "BHARTIYA MAHILA BANK",

	// Private sector banks
	"UTIB": "AXIS BANK",
	"HDFC": "HDFC BANK",
	"ICIC": "ICICI BANK",
	"INDB": "INDUSIND BANK",
	"KKBK": "KOTAK MAHINDRA BANK",
	"YESB": "YES BANK",
	"DCBL": "DCB BANK",
	"FDRL": "FEDERAL BANK",
	"KARB": "KARNATAKA BANK",
	"KVBL": "KARUR VYSYA BANK",
	"RATN": "RBL BANK",
	"SIBL": "SOUTH INDIAN BANK",
	"TMBL": "TAMILNAD MERCANTILE BANK",
	"VYSA": "ING VYSYA BANK",

	// Co-operative banks
	"ABHY": "ABHYUDAYA CO-OP BANK",
	"ASBL": "APNA SAHAKARI BANK",
	"GSCB": "GUJARAT STATE CO-OP BANK",
	"HCBL": "HASTI CO-OP BANK",
	"JSBP": "JANATA SAHAKARI BANK",
	"MSNU": "MEHSANA URBAN CO-OP BANK",
	"NTBL": "NAINITAL BANK",
	"NKGS": "NKGSB CO-OP BANK",
	"PMCB": "PUNJAB & MAHARASHTRA CO-OP BANK",
	"SRCB": "SARASWAT BANK",

	// Small finance and payments banks
	"CIUB": "CITY UNION BANK",
	"CSBK": "CATHOLIC SYRIAN BANK",
	"DLXB": "DHANLAXMI BANK",
	"ESFB": "EQUITAS SMALL FINANCE BANK",
	"IDFB": "IDFC FIRST BANK",
	"JAKA": "JAMMU & KASHMIR BANK",
	"LAVB": "LAKSHMI VILAS BANK",
	"NSPB": "NSDL PAYMENTS BANK",
	"PAYU": "PAYU PAYMENTS PRIVATE LIMITED",
	"PYTM": "PAYTM PAYMENTS BANK",
}

// Validate reports whether code is a structurally valid IFSC:
// 4 letters, a literal '0', then 6 alphanumeric characters.
func Validate(code string) bool {
	if len(code) != 11 {
		return false
	}
	for _, r := range code[:4] {
		if !isLetter(r) {
			return false
		}
	}
	if code[4] != '0' {
		return false
	}
	for _, r := range code[5:] {
		if !isLetter(r) && !isDigit(r) {
			return false
		}
	}
	return true
}

// BankName resolves the bank display name for an IFSC code. Codes shorter
// than the 4 character bank identifier yield "UNKNOWN BANK (<code>)";
// unmapped identifiers fall back to "<PREFIX> BANK".
func BankName(code string) string {
	if len(code) < 4 {
		return fmt.Sprintf("UNKNOWN BANK (%s)", code)
	}
	prefix := strings.ToUpper(code[:4])
	if name, ok := bankNames[prefix]; ok {
		return name
	}
	return prefix + " BANK"
}

// Banks returns a copy of the built-in prefix table. Callers may layer their
// own overrides on the copy; the table itself is never mutated.
func Banks() map[string]string {
	banks := make(map[string]string, len(bankNames))
	for prefix, name := range bankNames {
		banks[prefix] = name
	}
	return banks
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
