package domain

import (
	"strconv"
	"strings"
)

// ShareText renders the plain-text message used when a posting is shared.
// Empty location and package lines are left blank.
func (j JobPosting) ShareText() string {
	var b strings.Builder
	b.WriteString("🔥 *New Job Opening* 🔥\n\n")
	b.WriteString("*Position:* " + j.JobTitle + "\n")
	b.WriteString("*Role:* " + j.JobPosition + "\n")
	b.WriteString("*Company:* " + j.CompanyDetails + "\n")
	if j.Location != "" {
		b.WriteString("*Location:* " + j.Location)
	}
	b.WriteString("\n")
	if j.Package != nil && *j.Package != 0 {
		b.WriteString("*Package:* " + FormatPackage(*j.Package))
	}
	b.WriteString("\n\n*Job Description:*\n")
	b.WriteString(j.JobDescription + "\n\n")
	b.WriteString("--------------------------------\n")
	b.WriteString("📌 Apply now! \nShare this opportunity with your friends who might be interested.\n\n")
	b.WriteString("#JobOpening #Career #Opportunity")
	if j.Category != "" {
		b.WriteString(" #" + strings.Join(strings.Fields(string(j.Category)), ""))
	}
	return strings.TrimSpace(b.String())
}

// FormatPackage renders a package amount in lakhs per annum, e.g. "4.5 LPA".
func FormatPackage(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + " LPA"
}
