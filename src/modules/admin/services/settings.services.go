package admin

import "sync"

type GeneralSettings struct {
	SiteName           string `json:"siteName"`
	SupportEmail       string `json:"supportEmail"`
	MaintenanceMode    bool   `json:"maintenanceMode"`
	AllowRegistrations bool   `json:"allowRegistrations"`
}

type PaymentSettings struct {
	Currency           string  `json:"currency"`
	MobileMoneyEnabled bool    `json:"mobileMoneyEnabled"`
	CardEnabled        bool    `json:"cardEnabled"`
	PayPalEnabled      bool    `json:"payPalEnabled"`
	MonthlyPrice       float64 `json:"monthlyPrice"`
	AnnualPrice        float64 `json:"annualPrice"`
}

type Settings struct {
	General GeneralSettings `json:"general"`
	Payment PaymentSettings `json:"payment"`
}

// Settings live in memory only and reset on restart.
var (
	settingsMu sync.RWMutex
	settings   = Settings{
		General: GeneralSettings{
			SiteName:           "MovieChamp",
			SupportEmail:       "support@moviechamp.com",
			AllowRegistrations: true,
		},
		Payment: PaymentSettings{
			Currency:           "UGX",
			MobileMoneyEnabled: true,
			CardEnabled:        true,
			PayPalEnabled:      true,
			MonthlyPrice:       20000,
			AnnualPrice:        200000,
		},
	}
)

func GetSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func UpdateGeneralSettings(update GeneralSettings) Settings {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.General = update
	return settings
}

func UpdatePaymentSettings(update PaymentSettings) Settings {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.Payment = update
	return settings
}
