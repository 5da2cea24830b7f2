package apiclient

// Company is one row of GET /companieslist.
type Company struct {
	UserID      int    `json:"user_id"`
	CompanyName string `json:"company_name"`
	AccoID      int    `json:"accoid"`
	AcCode      int    `json:"ac_code"`
}

// SystemMasterEntry is one row of GET /get_system_master. SystemType
// partitions the table ("S" grade, "Z" season, "U" unit).
type SystemMasterEntry struct {
	ID          int    `json:"id"`
	SystemType  string `json:"System_Type"`
	SystemNameE string `json:"System_Name_E"`
}

// ResaleListing is the body element of POST /publishlist-tender.
type ResaleListing struct {
	Date          string `json:"Date"`
	MillCode      int    `json:"Mill_Code"`
	Grade         string `json:"Grade"`
	Season        string `json:"Season"`
	LiftingDate   string `json:"Lifting_date"`
	PaymentDate   string `json:"Payment_Date"`
	DisplayRate   string `json:"Display_Rate"`
	DisplayQty    string `json:"Display_Qty"`
	StartDate     string `json:"Start_Date"`
	StartTime     string `json:"Start_Time"`
	EndDate       string `json:"End_Date"`
	EndTime       string `json:"End_Time"`
	ItemCode      int    `json:"itemcode"`
	TenderNo      int    `json:"Tender_No"`
	ItemName      string `json:"Item_Name"`
	UserID        string `json:"user_id"`
	PaymentAcCode string `json:"Payment_ToAcCode"`
	PtAccoID      string `json:"Pt_Accoid"`
	MillAccoID    int    `json:"mc"`
	IC            *int   `json:"ic"`
}

// MillTender is the record exchanged with /update_mill_tender. Rates and
// GST values travel as decimal strings.
type MillTender struct {
	MillTenderID      int     `json:"MillTenderId"`
	MillCode          int     `json:"Mill_Code"`
	DeliveryFrom      string  `json:"Delivery_From"`
	SugarType         string  `json:"Sugar_Type"`
	Quantity          float64 `json:"Quantity"`
	Packing           float64 `json:"Packing"`
	Season            string  `json:"Season"`
	LiftingDate       string  `json:"Lifting_Date"`
	LastDateOfPayment string  `json:"Last_Dateof_Payment"`
	RateIncludingGST  string  `json:"Rate_Including_GST"`
	UserID            *int    `json:"UserId"`
	MillUserName      string  `json:"mill_user_name"`
	ItemName          string  `json:"item_name"`
	StartDate         string  `json:"Start_Date"`
	StartTime         string  `json:"Start_Time"`
	EndDate           string  `json:"End_Date"`
	EndTime           string  `json:"End_Time"`
	MillUserID        string  `json:"MillUserId"`
	BaseRate          string  `json:"Base_Rate"`
	BaseRateGSTPerc   string  `json:"Base_Rate_GST_Perc"`
	BaseRateGSTAmount string  `json:"Base_Rate_GST_Amount"`
	TenderType        string  `json:"Tender_Type"`
}
