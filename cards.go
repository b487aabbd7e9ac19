// Package personasdk synthesizes a personality profile from a structured
// onboarding questionnaire and drives a persona-constrained dialogue on top of it.
package personasdk

// CardType is the input modality of an onboarding card.
type CardType string

const (
	CardTextInput    CardType = "TEXT_INPUT"
	CardTextArea     CardType = "TEXT_AREA"
	CardSingleSelect CardType = "SINGLE_SELECT"
	CardMultiSelect  CardType = "MULTI_SELECT"
	CardSlider       CardType = "SLIDER"
	CardSortable     CardType = "SORTABLE"
)

// CardOption is one selectable choice of a select/sortable card.
type CardOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CardDefinition is one question unit of the onboarding catalog.
// Definitions are immutable; the catalog order is the traversal order.
type CardDefinition struct {
	ID       int      `json:"id"`
	Module   string   `json:"module"`
	Question string   `json:"question"`
	Type     CardType `json:"type"`

	Options       []CardOption `json:"options,omitempty"`       // select/sortable types
	MinLabel      string       `json:"minLabel,omitempty"`      // slider
	MaxLabel      string       `json:"maxLabel,omitempty"`      // slider
	MaxSelections int          `json:"maxSelections,omitempty"` // multi-select, 0 = unbounded
	Placeholder   string       `json:"placeholder,omitempty"`
}

// OptionLabel resolves an option code to its human-readable label.
func (d *CardDefinition) OptionLabel(value string) (string, bool) {
	for _, opt := range d.Options {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}

// OptionValues returns the option codes in declared order.
func (d *CardDefinition) OptionValues() []string {
	if len(d.Options) == 0 {
		return nil
	}
	values := make([]string, len(d.Options))
	for i, opt := range d.Options {
		values[i] = opt.Value
	}
	return values
}

// Catalog is an ordered card sequence. Order is canonical and never changes at runtime.
type Catalog []CardDefinition

// ByID looks up a card definition by its id.
func (c Catalog) ByID(id int) (*CardDefinition, bool) {
	for i := range c {
		if c[i].ID == id {
			return &c[i], true
		}
	}
	return nil, false
}

// DefaultCards returns the built-in onboarding catalog (6 modules, 20 cards).
func DefaultCards() Catalog {
	return Catalog{
		// Module 1: 身份基石
		{
			ID:          1,
			Module:      "身份基石",
			Question:    "请用1-3个你最认同的身份标签定义自己（例如：创业者、父亲、科幻迷）。",
			Type:        CardTextInput,
			Placeholder: "标签之间用逗号分隔",
		},
		{
			ID:          2,
			Module:      "身份基石",
			Question:    "你的专业领域或深耕多年的爱好是什么？请用3个关键词概括。",
			Type:        CardTextInput,
			Placeholder: "例如：前端工程, 产品设计, 二战历史",
		},
		{
			ID:       3,
			Module:   "身份基石",
			Question: "当前人生阶段的重心是？",
			Type:     CardSingleSelect,
			Options: []CardOption{
				{Label: "探索与成长（学生/初入职场）", Value: "exploration"},
				{Label: "建立与拓展（组建家庭/事业攻坚）", Value: "building"},
				{Label: "平衡与传承（管理团队/辅导下一代）", Value: "balance"},
				{Label: "转型与新篇（开启第二曲线）", Value: "transformation"},
			},
		},
		// Module 2: 认知光谱
		{
			ID:       4,
			Module:   "认知光谱",
			Question: "你更偏爱周密计划，还是随性而为？",
			Type:     CardSlider,
			MinLabel: "计划主义",
			MaxLabel: "随机主义",
		},
		{
			ID:       5,
			Module:   "认知光谱",
			Question: "做重要决定时，逻辑分析和内心感受哪个占上风？",
			Type:     CardSlider,
			MinLabel: "理性主导",
			MaxLabel: "感性主导",
		},
		{
			ID:       6,
			Module:   "认知光谱",
			Question: "你通常先看到森林，还是先看到树木？",
			Type:     CardSlider,
			MinLabel: "宏观蓝图",
			MaxLabel: "微观细节",
		},
		{
			ID:       7,
			Module:   "认知光谱",
			Question: "你更喜欢独自攻克难题，还是团队协同作战？",
			Type:     CardSlider,
			MinLabel: "独立自主",
			MaxLabel: "团队协作",
		},
		{
			ID:       8,
			Module:   "认知光谱",
			Question: "你对风险的总体态度是？",
			Type:     CardSlider,
			MinLabel: "极度规避",
			MaxLabel: "热衷冒险",
		},
		// Module 3: 价值决策
		{
			ID:       9,
			Module:   "价值决策",
			Question: "如果必须在项目中牺牲一项，请按 保留优先级 排序（最重要的排上面）",
			Type:     CardSortable,
			Options: []CardOption{
				{Label: "进度（按时交付）", Value: "schedule"},
				{Label: "质量（完美体验）", Value: "quality"},
				{Label: "成本（控制预算）", Value: "cost"},
				{Label: "团队士气（成员感受）", Value: "morale"},
			},
		},
		{
			ID:       10,
			Module:   "价值决策",
			Question: "一个项目若成功能帮到千万人，但需夸大宣传。你的底线是？",
			Type:     CardSingleSelect,
			Options: []CardOption{
				{Label: "绝不行，诚信不可妥协", Value: "strict_integrity"},
				{Label: "可轻微模糊表述", Value: "slight_blur"},
				{Label: "只要结果正义，手段可灵活", Value: "flexible_means"},
				{Label: "视竞争环境而定", Value: "context_dependent"},
			},
		},
		{
			ID:            11,
			Module:        "价值决策",
			Question:      "你更倾向于相信哪种信息源来形成观点？（选1-3项）",
			Type:          CardMultiSelect,
			MaxSelections: 3,
			Options: []CardOption{
				{Label: "数据和报告", Value: "data"},
				{Label: "专家或权威观点", Value: "authority"},
				{Label: "亲友或同事经验", Value: "peers"},
				{Label: "自身的直觉与感受", Value: "intuition"},
				{Label: "多数人的共识", Value: "consensus"},
			},
		},
		{
			ID:          12,
			Module:      "价值决策",
			Question:    "你最欣赏的榜样身上，最核心的三个特质是？",
			Type:        CardTextInput,
			Placeholder: "例如：坚韧, 洞察力, 真诚",
		},
		// Module 4: 情感模式
		{
			ID:       13,
			Module:   "情感模式",
			Question: "面对巨大压力时，你的第一反应更接近？",
			Type:     CardSingleSelect,
			Options: []CardOption{
				{Label: "冷静分析，寻找解决方案", Value: "analyze"},
				{Label: "寻求社交支持，找人倾诉", Value: "social_support"},
				{Label: "暂时抽离，用爱好转移", Value: "distract"},
				{Label: "内在消化，自我激励", Value: "internalize"},
			},
		},
		{
			ID:            14,
			Module:        "情感模式",
			Question:      "什么最能给你带来强烈的成就感？（选1-2项）",
			Type:          CardMultiSelect,
			MaxSelections: 2,
			Options: []CardOption{
				{Label: "外界的认可与赞誉", Value: "recognition"},
				{Label: "克服艰难挑战的过程", Value: "challenge"},
				{Label: "创造独特有价值的事物", Value: "creation"},
				{Label: "帮助他人获得成长", Value: "helping"},
				{Label: "达到内心的平静与自洽", Value: "peace"},
			},
		},
		{
			ID:       15,
			Module:   "情感模式",
			Question: "你希望你的数字生命，在情感上更像一个？",
			Type:     CardSingleSelect,
			Options: []CardOption{
				{Label: "坚定的支持者（总是鼓励）", Value: "supporter"},
				{Label: "犀利的诤友（直言不讳）", Value: "critic"},
				{Label: "理性的分析师（冷静客观）", Value: "analyst"},
				{Label: "默契的伙伴（善解人意）", Value: "partner"},
			},
		},
		// Module 5: 表达风格
		{
			ID:          16,
			Module:      "表达风格",
			Question:    "写下2-3个你常用的口头禅或语气词。",
			Type:        CardTextInput,
			Placeholder: "例如：说白了, 其实, 对吧",
		},
		{
			ID:          17,
			Module:      "表达风格",
			Question:    "用你自己的话，简单评价一下'人工智能'。",
			Type:        CardTextArea,
			Placeholder: "限制100字以内...",
		},
		{
			ID:            18,
			Module:        "表达风格",
			Question:      "解释复杂概念时，你更自然地使用哪类比喻？（选1-2项）",
			Type:          CardMultiSelect,
			MaxSelections: 2,
			Options: []CardOption{
				{Label: "战争/竞赛类比", Value: "war"},
				{Label: "生长/生态类比", Value: "nature"},
				{Label: "机械/建筑类比", Value: "mechanical"},
				{Label: "商业/交易类比", Value: "business"},
				{Label: "故事/角色类比", Value: "story"},
			},
		},
		// Module 6: 知识档案
		{
			ID:          19,
			Module:      "知识档案",
			Question:    "对你影响最深的一本书、一部电影或一个人是？请简述原因。",
			Type:        CardTextArea,
			Placeholder: "这将构成你数字生命的底层哲学...",
		},
		{
			ID:          20,
			Module:      "知识档案",
			Question:    "未来一年，你最关心哪三个领域的发展？",
			Type:        CardTextInput,
			Placeholder: "例如：边缘计算, 脑机接口, 教育改革",
		},
	}
}
