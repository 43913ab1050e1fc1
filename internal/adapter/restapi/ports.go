package restapi

import "mesa-console/internal/core/port"

var (
	_ port.ProductAPI      = (*ProductClient)(nil)
	_ port.AgencyAPI       = (*AgencyClient)(nil)
	_ port.UserAPI         = (*UserClient)(nil)
	_ port.CampaignAPI     = (*CampaignClient)(nil)
	_ port.AdAPI           = (*AdClient)(nil)
	_ port.SellerAPI       = (*SellerClient)(nil)
	_ port.NotificationAPI = (*NotificationClient)(nil)
	_ port.AuthAPI         = (*AuthClient)(nil)
)
