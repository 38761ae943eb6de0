package main

type NavItem struct {
	Name string
	Href string
}

type Highlight struct {
	Icon        string
	Title       string
	Description string
}

type Project struct {
	ID          int
	Title       string
	Description string
	Tags        []string
	Image       string
	DemoURL     string
	RepoURL     string
}

type Skill struct {
	Name  string
	Level int // 1-5
}

// Percent is the width of the skill bar.
func (s Skill) Percent() int { return s.Level * 20 }

type SkillCategory struct {
	Name   string
	Icon   string
	Color  string
	Skills []Skill
}

type BlogPost struct {
	Slug     string
	Title    string
	Excerpt  string
	Date     string
	ReadTime string
}

type ContactMethod struct {
	Label string
	Value string
	Href  string
}

var (
	Tagline = `Full-stack developer building web and AI products.`

	AboutMe = `I like turning rough ideas into tools people actually use. Most of my work
	sits where web development meets AI: small, sharp products with a clean interface
	and a solid backend behind it. Outside of code I write about what I learn and
	tinker with side projects like the caption studio on this site.`

	Navigation = []NavItem{
		{Name: "Home", Href: "#hero"},
		{Name: "About", Href: "#about"},
		{Name: "Projects", Href: "#projects"},
		{Name: "Skills", Href: "#skills"},
		{Name: "Blog", Href: "#blog"},
		{Name: "Contact", Href: "#contact"},
		{Name: "Caption Studio", Href: "/caption"},
	}

	Highlights = []Highlight{
		{Icon: "🎯", Title: "Mission", Description: "Create value with technology and change the world with products"},
		{Icon: "💼", Title: "Experience", Description: "3+ years of full-stack work focused on web and AI applications"},
		{Icon: "💡", Title: "Philosophy", Description: "Technology should serve people and make the world a little better"},
	}

	Projects = []Project{
		{
			ID:          1,
			Title:       "AI Assistant",
			Description: "An assistant built on large language models with multi-turn chat, code generation and document reading.",
			Tags:        []string{"React", "TypeScript", "OpenAI API"},
			Image:       "/static/projects/project-1.png",
			DemoURL:     "#",
			RepoURL:     "#",
		},
		{
			ID:          2,
			Title:       "Blog Engine",
			Description: "A complete blogging platform with Markdown, syntax highlighting and reading statistics.",
			Tags:        []string{"Next.js", "MDX", "Tailwind"},
			Image:       "/static/projects/project-2.svg",
			DemoURL:     "#",
			RepoURL:     "#",
		},
		{
			ID:          3,
			Title:       "Storefront",
			Description: "An end-to-end e-commerce solution with cart, payments and order management.",
			Tags:        []string{"React", "Node.js", "MongoDB"},
			Image:       "/static/projects/project-3.svg",
			DemoURL:     "#",
			RepoURL:     "#",
		},
		{
			ID:          4,
			Title:       "Caption Studio",
			Description: "Stack subtitle bands onto any picture and download the result as a PNG.",
			Tags:        []string{"Go", "Gin", "HTMX"},
			Image:       "/static/projects/project-4.svg",
			DemoURL:     "/caption",
		},
	}

	SkillCategories = []SkillCategory{
		{
			Name:  "Frontend",
			Icon:  "🎨",
			Color: "from-blue-500 to-cyan-500",
			Skills: []Skill{
				{Name: "React", Level: 5},
				{Name: "Next.js", Level: 5},
				{Name: "TypeScript", Level: 4},
				{Name: "Vue", Level: 4},
				{Name: "Tailwind CSS", Level: 5},
			},
		},
		{
			Name:  "Backend",
			Icon:  "⚙️",
			Color: "from-green-500 to-emerald-500",
			Skills: []Skill{
				{Name: "Node.js", Level: 4},
				{Name: "Python", Level: 4},
				{Name: "Go", Level: 3},
				{Name: "PostgreSQL", Level: 4},
				{Name: "MongoDB", Level: 3},
			},
		},
		{
			Name:  "Tools",
			Icon:  "🛠️",
			Color: "from-orange-500 to-amber-500",
			Skills: []Skill{
				{Name: "Git", Level: 5},
				{Name: "Docker", Level: 3},
				{Name: "Linux", Level: 4},
				{Name: "AWS", Level: 3},
				{Name: "Figma", Level: 3},
			},
		},
	}

	BlogPosts = []BlogPost{
		{
			Slug:     "building-ai-web-apps",
			Title:    "Building an AI-powered web app",
			Excerpt:  "From environment setup to deployment: wiring a large language model API into a question answering app.",
			Date:     "2024-01-13",
			ReadTime: "8 min",
		},
		{
			Slug:     "choosing-a-stack",
			Title:    "How I choose a tech stack",
			Excerpt:  "Why React, TypeScript and Next.js ended up as my defaults, and the thinking behind it.",
			Date:     "2024-01-10",
			ReadTime: "5 min",
		},
		{
			Slug:     "react-server-components",
			Title:    "React Server Components in depth",
			Excerpt:  "How server components work and how they change the way we build applications.",
			Date:     "2024-01-05",
			ReadTime: "12 min",
		},
	}

	ContactMethods = []ContactMethod{
		{Label: "Email", Value: "contact@example.com", Href: "mailto:contact@example.com"},
		{Label: "GitHub", Value: "github.com/yourname", Href: "https://github.com/yourname"},
		{Label: "LinkedIn", Value: "linkedin.com/in/yourname", Href: "https://linkedin.com/in/yourname"},
		{Label: "Twitter", Value: "@yourname", Href: "https://twitter.com/yourname"},
	}
)
