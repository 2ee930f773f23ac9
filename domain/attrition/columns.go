package attrition

// Source column names of the employee attrition dataset.
const (
	ColAttrition               = "Attrition"
	ColAge                     = "Age"
	ColDepartment              = "Department"
	ColJobRole                 = "JobRole"
	ColGender                  = "Gender"
	ColMaritalStatus           = "MaritalStatus"
	ColYearsAtCompany          = "YearsAtCompany"
	ColMonthlyIncome           = "MonthlyIncome"
	ColJobSatisfaction         = "JobSatisfaction"
	ColOverTime                = "OverTime"
	ColBusinessTravel          = "BusinessTravel"
	ColWorkLifeBalance         = "WorkLifeBalance"
	ColYearsSinceLastPromotion = "YearsSinceLastPromotion"
	ColDistanceFromHome        = "DistanceFromHome"
	ColJobLevel                = "JobLevel"
	ColTotalWorkingYears       = "TotalWorkingYears"
)

// Derived column names added by the loader.
const (
	// ColAttritionFlag holds "1" for rows whose Attrition cell equals
	// PositiveOutcome and "0" for every other value. The mapping is fixed
	// here, never inferred from the data.
	ColAttritionFlag = "AttritionFlag"

	ColAgeBand       = "AgeBand"
	ColTenureBand    = "TenureBand"
	ColPromotionBand = "PromotionBand"
)

// PositiveOutcome is the literal Attrition value counted as a leaver.
const PositiveOutcome = "Yes"

// RequiredColumns lists every source column the binning and aggregation
// steps depend on. Loading fails with a schema error if any is absent.
var RequiredColumns = []string{
	ColAttrition,
	ColAge,
	ColDepartment,
	ColJobRole,
	ColGender,
	ColMaritalStatus,
	ColYearsAtCompany,
	ColMonthlyIncome,
	ColJobSatisfaction,
	ColOverTime,
	ColBusinessTravel,
	ColWorkLifeBalance,
	ColYearsSinceLastPromotion,
	ColDistanceFromHome,
	ColJobLevel,
	ColTotalWorkingYears,
}

// SalesDepartment scopes the sales deep-dive views.
const SalesDepartment = "Sales"

// EarlyCareerMaxYears bounds the early-career deep dive (YearsAtCompany <= 3).
const EarlyCareerMaxYears = 3
