package catalog

import "FundingIntel/backend/go/internal/models"

func builtinItems() []models.FundingItem {
	return []models.FundingItem{
		// 政府项目
		{
			ID: "1", Title: "TN Electric Vehicle Subsidy Scheme",
			Amount: "₹1,50,000", AmountValue: 150000,
			Stage: "Govt Subsidy", Location: "Tamil Nadu, India", Investor: "Government of Tamil Nadu",
			EvidenceURL: "https://investingintamilnadu.com/ev-policy.pdf",
			Tags:        []string{"Subsidy", "EV", "Govt", "Green Energy", "Automotive"},
			Type:        models.CategoryGovt, Deadline: "2024-12-31",
			Description: "Capital subsidy for EV manufacturing and purchase incentives for commercial vehicles.",
		},
		{
			ID: "ev-2", Title: "FAME II India Scheme",
			Amount: "₹1,00,00,000", AmountValue: 10000000,
			Stage: "Growth", Location: "Pan India", Investor: "Dept of Heavy Industry",
			EvidenceURL: "#",
			Tags:        []string{"Subsidy", "EV", "Govt", "Infrastructure"},
			Type:        models.CategoryGovt, Deadline: "2025-03-31",
			Description: "Faster Adoption and Manufacturing of Hybrid and Electric Vehicles (FAME II) scheme for charging infrastructure and fleet incentives.",
		},
		{
			ID: "ev-3", Title: "Karnataka EV Policy Grant",
			Amount: "₹50,00,000", AmountValue: 5000000,
			Stage: "Seed", Location: "Karnataka, India", Investor: "Govt of Karnataka",
			EvidenceURL: "#",
			Tags:        []string{"Grant", "EV", "R&D", "Bangalore"},
			Type:        models.CategoryGovt, Deadline: "2024-10-15",
			Description: "Incentives for EV component manufacturing and R&D startups in Karnataka.",
		},
		{
			ID: "ev-4", Title: "Maharashtra EV Promotion",
			Amount: "₹25,00,000", AmountValue: 2500000,
			Stage: "Early Stage", Location: "Maharashtra, India", Investor: "Maharashtra Govt",
			EvidenceURL: "#",
			Tags:        []string{"Subsidy", "EV", "Manufacturing"},
			Type:        models.CategorySubsidy, Deadline: models.DeadlineRolling,
		},
		{
			ID: "2", Title: "Startup India Seed Fund Scheme (SISFS)",
			Amount: "₹20,00,000", AmountValue: 2000000,
			Stage: "Seed", Location: "Pan India", Investor: "DPIIT, Govt of India",
			EvidenceURL: "https://seedfund.startupindia.gov.in",
			Tags:        []string{"Seed", "Tech", "Govt", "Early Stage", "General"},
			Type:        models.CategoryGovt, Deadline: "2025-03-31",
			Description: "Financial assistance to startups for proof of concept, prototype development, product trials, market entry and commercialization.",
		},
		{
			ID: "4", Title: "NIDHI-PRAYAS Grant",
			Amount: "₹10,00,000", AmountValue: 1000000,
			Stage: "Pre-Incubation", Location: "Pan India", Investor: "DST (Dept of Science & Tech)",
			EvidenceURL: "#",
			Tags:        []string{"Grant", "DeepTech", "Hardware", "Prototyping"},
			Type:        models.CategoryGovt, Deadline: "2024-09-30",
			Description: "Promoting and Accelerating Young and Aspiring technology entrepreneurs (PRAYAS) is a pre-incubation grant.",
		},
		{
			ID: "7", Title: "Karnataka ELEVATE 100",
			Amount: "₹50,00,000", AmountValue: 5000000,
			Stage: "Grant", Location: "Karnataka, India", Investor: "Govt of Karnataka",
			EvidenceURL: "#",
			Tags:        []string{"Grant", "Tech", "Innovation", "Bangalore"},
			Type:        models.CategoryGovt, Deadline: "2024-08-15",
			Description: "Grant-in-aid for innovative startups in Karnataka to scale up their operations.",
		},
		{
			ID: "8", Title: "BIRAC BIG Grant",
			Amount: "₹50,00,000", AmountValue: 5000000,
			Stage: "Idea-to-POC", Location: "Pan India", Investor: "BIRAC",
			EvidenceURL: "#",
			Tags:        []string{"Grant", "BioTech", "HealthTech", "Life Sciences"},
			Type:        models.CategoryGovt, Deadline: "2024-07-30",
			Description: "Biotechnology Ignition Grant (BIG) scheme for entrepreneurs and startups in the biotech sector.",
		},
		{
			ID: "13", Title: "Kerala Startup Mission (KSUM) Innovation Grant",
			Amount: "₹12,00,000", AmountValue: 1200000,
			Stage: "Early Stage", Location: "Kerala, India", Investor: "Kerala Govt",
			EvidenceURL: "#",
			Tags:        []string{"Grant", "Kerala", "Innovation", "Product Dev"},
			Type:        models.CategoryGovt, Deadline: "Open Round",
		},
		{
			ID: "19", Title: "T-Hub T-Fund",
			Amount: "₹1,00,00,000", AmountValue: 10000000,
			Stage: "Seed", Location: "Telangana, India", Investor: "Telangana Govt",
			EvidenceURL: "#",
			Tags:        []string{"Equity", "Telangana", "Growth"},
			Type:        models.CategoryGovt, Deadline: models.DeadlineRolling,
		},

		// 风险投资
		{
			ID: "3", Title: "Sequoia Surge Cohort 10",
			Amount: "₹12,00,00,000", AmountValue: 120000000,
			Stage: "Pre-Series A", Location: "Bangalore, India", Investor: "Sequoia Capital",
			EvidenceURL: "#",
			Tags:        []string{"VC", "SaaS", "High Growth", "Accelerator"},
			Type:        models.CategoryVC, Deadline: "2024-06-15",
			Description: "Rapid-scale up program for early stage startups in India and SE Asia.",
		},
		{
			ID: "9", Title: "Accel Atoms 4.0",
			Amount: "₹4,00,00,000", AmountValue: 40000000,
			Stage: "Pre-Seed", Location: "Remote / India", Investor: "Accel",
			EvidenceURL: "#",
			Tags:        []string{"VC", "AI", "Industry 5.0", "Pre-Seed"},
			Type:        models.CategoryVC, Deadline: "2024-10-01",
			Description: "Sector-focused pre-seed program for AI and Bharat founders.",
		},
		{
			ID: "10", Title: "Blume Ventures Fund IV",
			Amount: "₹15,00,00,000", AmountValue: 150000000,
			Stage: "Series A", Location: "Mumbai, India", Investor: "Blume Ventures",
			EvidenceURL: "#",
			Tags:        []string{"VC", "DeepTech", "Consumer Tech", "B2B"},
			Type:        models.CategoryVC, Deadline: models.DeadlineRolling,
		},
		{
			ID: "14", Title: "Y Combinator W25",
			Amount: "₹4,10,00,000", AmountValue: 41000000,
			Stage: "Pre-Seed", Location: "Global (Remote)", Investor: "Y Combinator",
			EvidenceURL: "#",
			Tags:        []string{"Accelerator", "Global", "USD", "Tech"},
			Type:        models.CategoryVC, Deadline: "2024-11-20",
		},
		{
			ID: "15", Title: "Omidyar Network India",
			Amount: "₹5,00,00,000", AmountValue: 50000000,
			Stage: "Seed", Location: "Pan India", Investor: "Omidyar Network",
			EvidenceURL: "#",
			Tags:        []string{"VC", "Impact", "EdTech", "FinTech"},
			Type:        models.CategoryVC, Deadline: models.DeadlineRolling,
		},

		// 天使投资
		{
			ID: "5", Title: "Angel Network DeepTech Fund",
			Amount: "₹1,00,00,000", AmountValue: 10000000,
			Stage: "Angel Round", Location: "Hyderabad, India", Investor: "Hyderabad Angels",
			EvidenceURL: "#",
			Tags:        []string{"Angel", "AI/ML", "DeepTech"},
			Type:        models.CategoryAngel, Deadline: "2024-08-20",
		},
		{
			ID: "11", Title: "Indian Angel Network (IAN) Fund",
			Amount: "₹2,50,00,000", AmountValue: 25000000,
			Stage: "Seed", Location: "Delhi NCR, India", Investor: "IAN",
			EvidenceURL: "#",
			Tags:        []string{"Angel", "Network", "Sector Agnostic"},
			Type:        models.CategoryAngel, Deadline: models.DeadlineRolling,
		},
		{
			ID: "16", Title: "Mumbai Angels Network",
			Amount: "₹1,50,00,000", AmountValue: 15000000,
			Stage: "Seed", Location: "Mumbai, India", Investor: "Mumbai Angels",
			EvidenceURL: "#",
			Tags:        []string{"Angel", "Equity", "Consumer"},
			Type:        models.CategoryAngel, Deadline: models.DeadlineRolling,
		},

		// 补贴与专项资助
		{
			ID: "6", Title: "Women Entrepreneurship Subsidy",
			Amount: "₹10,00,000", AmountValue: 1000000,
			Stage: "Subsidy", Location: "Karnataka, India", Investor: "State Govt",
			EvidenceURL: "#",
			Tags:        []string{"Subsidy", "Women", "SME"},
			Type:        models.CategorySubsidy, Deadline: "2024-11-01",
			Description: "Special subsidy for women-owned manufacturing enterprises in industrial areas.",
		},
		{
			ID: "12", Title: "Gujarat Industrial Policy Subsidy",
			Amount: "₹25,00,000", AmountValue: 2500000,
			Stage: "Growth", Location: "Gujarat, India", Investor: "Gujarat Govt",
			EvidenceURL: "#",
			Tags:        []string{"Subsidy", "Manufacturing", "Textile", "Chemicals"},
			Type:        models.CategorySubsidy, Deadline: "2025-01-01",
		},
		{
			ID: "17", Title: "Maharashtra Agribusiness Network (Magnet)",
			Amount: "₹60,00,000", AmountValue: 6000000,
			Stage: "Grant", Location: "Maharashtra, India", Investor: "ADB & Maharashtra Govt",
			EvidenceURL: "#",
			Tags:        []string{"Grant", "AgriTech", "Food Processing"},
			Type:        models.CategoryGovt, Deadline: "2024-12-15",
		},
		{
			ID: "18", Title: "Drone PLI Scheme",
			Amount: "₹1,00,00,000", AmountValue: 10000000,
			Stage: "Growth", Location: "Pan India", Investor: "Ministry of Civil Aviation",
			EvidenceURL: "#",
			Tags:        []string{"Subsidy", "Drones", "Defence", "PLI"},
			Type:        models.CategoryGovt, Deadline: "2024-09-01",
		},
		{
			ID: "20", Title: "Cisco LaunchPad",
			Amount: "Non-Dilutive", AmountValue: 0,
			Stage: "Accelerator", Location: "Bangalore", Investor: "Cisco",
			EvidenceURL: "#",
			Tags:        []string{"Accelerator", "B2B", "DeepTech"},
			Type:        models.CategoryVC, Deadline: "Applications Open",
		},
	}
}
