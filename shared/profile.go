package shared

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Profile represents the listing profile of a market symbol.
type Profile struct {
	Symbol      string
	CompanyName string
	Exchange    string
	Currency    string
	IPODate     time.Time
	IsEtf       bool
	IsFund      bool
}

// IsEquity asserts whether the profile describes a stock or equity ticker.
func (p *Profile) IsEquity() bool {
	return !p.IsEtf && !p.IsFund
}

// ParseProfile parses a symbol profile from the provided json data.
func ParseProfile(data gjson.Result) (*Profile, error) {
	profile := &Profile{
		Symbol:      data.Get("symbol").String(),
		CompanyName: data.Get("companyName").String(),
		Exchange:    data.Get("exchangeFullName").String(),
		Currency:    data.Get("currency").String(),
		IsEtf:       data.Get("isEtf").Bool(),
		IsFund:      data.Get("isFund").Bool(),
	}

	ipo := data.Get("ipoDate").String()
	if ipo != "" {
		dt, err := time.Parse(DateLayout, ipo)
		if err != nil {
			return nil, fmt.Errorf("parsing profile ipo date: %w", err)
		}

		profile.IPODate = dt
	}

	return profile, nil
}
