package domain

// Canonical topic labels matching the passage metadata written by the corpus
// build. Topic detection must emit these exact strings for filtered search to
// hit anything.
const (
	TopicKhula            = "الخلع"
	TopicDivorce          = "الطلاق"
	TopicCustody          = "الحضانة"
	TopicAlimony          = "النفقة"
	TopicRelativeAlimony  = "نفقة الأقارب"
	TopicDowry            = "المهر"
	TopicIddah            = "العدة"
	TopicLineage          = "النسب"
	TopicEngagement       = "الخطبة"
	TopicAnnulment        = "فسخ النكاح"
	TopicWill             = "الوصية"
	TopicInheritance      = "أحكام الإرث"
	TopicFixedShares      = "الإرث بالفرض"
	TopicTasib            = "التعصيب"
	TopicHajb             = "الحجب"
	TopicGuardianship     = "الوصاية"
	TopicMinorWardship    = "الولاية على القاصر"
	TopicMissingPerson    = "الغائب والمفقود"
	TopicMarriageContract = "عقد الزواج"
	TopicMarriageWali     = "الولاية في الزواج"
)

// defaultVerbPatterns covers conjugated forms of common legal actions that the
// noun table misses ("طلقني زوجي" carries no bare "طلاق" substring).
var defaultVerbPatterns = []VerbPattern{
	{Forms: []string{"طلقني", "طلقها", "طلقت", "يطلقني", "أطلق"}, Topic: TopicDivorce},
	{Forms: []string{"أخالع", "خالعت", "تخالع", "اختلعت"}, Topic: TopicKhula},
	{Forms: []string{"يرث", "ترث", "ورثت", "نرث", "أرث"}, Topic: TopicInheritance},
	{Forms: []string{"أحضن", "تحضن", "يحضن", "حضنت"}, Topic: TopicCustody},
	{Forms: []string{"تزوجت", "يتزوج", "أتزوج", "تزوج"}, Topic: TopicMarriageContract},
	{Forms: []string{"ينفق", "تنفق", "أنفق عليها", "لا ينفق"}, Topic: TopicAlimony},
	{Forms: []string{"أوصى", "أوصت", "يوصي", "أوصي"}, Topic: TopicWill},
}

// defaultTopicEntries is the main surface-term table, ported from the corpus
// topic vocabulary. Order here is irrelevant; NewTopicTable sorts by length.
var defaultTopicEntries = []TopicEntry{
	{Term: "خلع", Topic: TopicKhula},
	{Term: "مخالعة", Topic: TopicKhula},
	{Term: "افتداء", Topic: TopicKhula},

	{Term: "طلاق", Topic: TopicDivorce},
	{Term: "تطليق", Topic: TopicDivorce},
	{Term: "رجعي", Topic: TopicDivorce},
	{Term: "بائن", Topic: TopicDivorce},
	{Term: "مراجعة", Topic: TopicDivorce},

	{Term: "حضانة", Topic: TopicCustody},
	{Term: "محضون", Topic: TopicCustody},
	{Term: "حاضن", Topic: TopicCustody},

	{Term: "نفقة", Topic: TopicAlimony},
	{Term: "نفقة الزوجة", Topic: TopicAlimony},
	{Term: "نفقة الأولاد", Topic: TopicRelativeAlimony},
	{Term: "نفقة الأقارب", Topic: TopicRelativeAlimony},

	{Term: "مهر", Topic: TopicDowry, WholeWord: true},
	{Term: "صداق", Topic: TopicDowry},
	{Term: "مؤخر الصداق", Topic: TopicDowry},

	{Term: "عدة", Topic: TopicIddah, WholeWord: true},
	{Term: "عدة الوفاة", Topic: TopicIddah},
	{Term: "عدة الطلاق", Topic: TopicIddah},

	{Term: "نسب", Topic: TopicLineage, WholeWord: true},
	{Term: "إثبات النسب", Topic: TopicLineage},
	{Term: "لعان", Topic: TopicLineage},

	{Term: "خطبة", Topic: TopicEngagement},
	{Term: "خاطب", Topic: TopicEngagement},

	{Term: "فسخ", Topic: TopicAnnulment},
	{Term: "تفريق", Topic: TopicAnnulment},
	{Term: "تفريق للضرر", Topic: TopicAnnulment},
	{Term: "شقاق", Topic: TopicAnnulment},
	{Term: "ضرر", Topic: TopicAnnulment},

	{Term: "وصية", Topic: TopicWill},
	{Term: "موصي", Topic: TopicWill},
	{Term: "موصى", Topic: TopicWill},

	{Term: "إرث", Topic: TopicInheritance},
	{Term: "ميراث", Topic: TopicInheritance},
	{Term: "تركة", Topic: TopicInheritance},
	{Term: "ورثة", Topic: TopicInheritance},

	{Term: "فرض", Topic: TopicFixedShares, WholeWord: true},
	{Term: "تعصيب", Topic: TopicTasib},
	{Term: "حجب", Topic: TopicHajb},

	{Term: "وصاية", Topic: TopicGuardianship},
	{Term: "وصي", Topic: TopicGuardianship},
	{Term: "قاصر", Topic: TopicMinorWardship},

	{Term: "مفقود", Topic: TopicMissingPerson},
	{Term: "غائب", Topic: TopicMissingPerson},

	{Term: "زواج", Topic: TopicMarriageContract},
	{Term: "نكاح", Topic: TopicMarriageContract},
	{Term: "شروط عقد الزواج", Topic: TopicMarriageContract},

	{Term: "ولي", Topic: TopicMarriageWali, WholeWord: true},
	{Term: "الولاية في الزواج", Topic: TopicMarriageWali},
}

// NewDefaultTopicTable builds the table for the personal-status-law corpus.
func NewDefaultTopicTable() *TopicTable {
	return NewTopicTable(defaultVerbPatterns, defaultTopicEntries)
}
