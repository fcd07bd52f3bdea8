package community

import "scamshield/internal/core/domain"

// SeedPosts is the demo feed every session starts with.
func SeedPosts() []domain.CommunityPost {
	return []domain.CommunityPost{
		{
			ID:        1,
			Author:    "Alex_CyberSafe",
			Avatar:    "A",
			Content:   "Just got a weird text claiming my Netflix account was suspended. The link looked like 'netflix-support-verify.com'. Almost clicked it but checked the URL scanner here first. Be careful guys!",
			Timestamp: "2 hours ago",
			LikedBy:   []string{"SarahJ", "Mike_Sec", "TrollBot"},
			Tags:      []string{"Phishing", "SMS", "Awareness"},
			Comments: []domain.Comment{
				{ID: 101, Author: AIAuthor, Content: "Great catch! That is a classic 'smishing' attack. Official services rarely send urgent links via SMS without prior context.", Timestamp: "2 hours ago", IsAi: true},
				{ID: 102, Author: "SarahJ", Content: "Same thing happened to me last week. Blocked the number immediately.", Timestamp: "1 hour ago"},
			},
		},
		{
			ID:        2,
			Author:    "DevOps_Mike",
			Avatar:    "M",
			Content:   "Has anyone analyzed the new ransomware variant targeting healthcare institutions? I'm trying to find IOCs (Indicators of Compromise) to update our firewalls.",
			Timestamp: "5 hours ago",
			LikedBy:   []string{"Alex_CyberSafe"},
			Tags:      []string{"Ransomware", "ThreatIntel", "Healthcare"},
			Comments:  []domain.Comment{},
		},
		{
			ID:        3,
			Author:    "NewbieSec",
			Avatar:    "N",
			Content:   "What is the best way to secure my home router? I changed the default password, but what else should I do?",
			Timestamp: "1 day ago",
			LikedBy:   []string{},
			Tags:      []string{"HomeSecurity", "Router", "Help"},
			Comments: []domain.Comment{
				{ID: 103, Author: AIAuthor, Content: "Excellent start! Also consider disabling WPS (Wi-Fi Protected Setup), enabling WPA3 encryption if available, and updating the firmware regularly.", Timestamp: "1 day ago", IsAi: true},
			},
		},
	}
}
